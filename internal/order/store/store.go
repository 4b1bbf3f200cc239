// Package store provides the persisted order collection.
package store

import (
	"github.com/kaozx001/project-nawatakum/internal/order"
)

// OrderStore is the order collection, most-recently-created first.
// It abstracts the persistence medium; business rules live in the service.
type OrderStore interface {
	// All returns a copy of the whole collection in storage order.
	All() []order.Order

	// ByID retrieves a single order by id.
	// Returns ErrOrderNotFound if no order exists with the given id.
	ByID(id string) (*order.Order, error)

	// ByUser returns the user's orders, preserving collection order.
	ByUser(userID string) []order.Order

	// Prepend inserts a freshly created order at the head of the collection.
	Prepend(o order.Order) error

	// Replace swaps the stored record with the same id for o.
	// Returns ErrOrderNotFound if no order exists with the given id.
	Replace(o order.Order) error

	// Exists reports whether an order with the given id is present.
	Exists(id string) bool
}
