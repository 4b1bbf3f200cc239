// Package messaging defines the storefront event contract. Order mutations
// emit events; delivery is best-effort and never fails the mutation.
package messaging

import (
	"context"
)

const (
	OrderCreatedSubject       = "storefront.orders.created"
	OrderStatusChangedSubject = "storefront.orders.status_changed"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}
