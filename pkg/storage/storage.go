// Package storage provides the local key-value persistence used by the
// storefront stores. Each collection lives under its own key as a single JSON
// document, mirroring the browser local-storage layout the data originates
// from.
package storage

// KV is a JSON document store keyed by collection name.
// It abstracts the underlying medium, allowing for different implementations (e.g., in-memory, file).
type KV interface {
	// Load decodes the document stored under key into v.
	// Returns found=false when the key has never been written. A document
	// that exists but cannot be decoded is discarded and reported as absent;
	// corruption is never surfaced as an error to callers.
	Load(key string, v any) (found bool, err error)

	// Save encodes v as JSON and stores it under key, replacing any previous
	// document atomically.
	Save(key string, v any) error

	// Delete removes the document stored under key, if any.
	Delete(key string) error
}
