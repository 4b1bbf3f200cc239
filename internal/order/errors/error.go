// Package errors defines the sentinel errors returned by the order engine.
package errors

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrPersistOrders    = errors.New("failed to persist order collection")
)
