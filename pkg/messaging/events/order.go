// Package events holds the event payloads published by the order store.
package events

import (
	"encoding/json"
	"time"

	"github.com/kaozx001/project-nawatakum/pkg/messaging"
)

type OrderCreatedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

func (e OrderCreatedEvent) Subject() string {
	return messaging.OrderCreatedSubject
}

func (e OrderCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

func (e OrderStatusChangedEvent) Subject() string {
	return messaging.OrderStatusChangedSubject
}

func (e OrderStatusChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
