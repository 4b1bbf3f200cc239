// Package order implements the order lifecycle engine: creation from a cart
// snapshot, the status state machine with its audit trail, role-gated
// queries, and the stats fold for the admin dashboard.
package order

import (
	"time"

	"github.com/kaozx001/project-nawatakum/pkg/money"
)

// Item is one purchased line, frozen at creation time. It is a copy of the
// cart line, not a live reference into the catalog.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// Shipping is the buyer-entered delivery record.
type Shipping struct {
	FullName   string `json:"fullName"   validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"      validate:"required"`
	Address    string `json:"address"    validate:"required"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Note       string `json:"note"`
}

// PaymentInfo records how a paid order was settled.
type PaymentInfo struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
}

// StatusEntry is one line of the append-only audit trail.
type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// Order is an immutable-at-creation purchase record with a mutable status.
// Money fields persist as display strings; cancellation is a status, never a
// deletion.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Items         []Item        `json:"items"`
	Shipping      Shipping      `json:"shipping"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	PaymentInfo   *PaymentInfo  `json:"paymentInfo,omitempty"`
	Subtotal      money.Money   `json:"subtotal"`
	ShippingFee   money.Money   `json:"shippingFee"`
	Tax           money.Money   `json:"tax"`
	CodFee        *money.Money  `json:"codFee,omitempty"`
	Total         money.Money   `json:"total"`
	StatusHistory []StatusEntry `json:"statusHistory"`
}

// clone returns a deep copy so callers can never reach into stored state.
func (o *Order) clone() *Order {
	c := *o
	c.Items = make([]Item, len(o.Items))
	copy(c.Items, o.Items)
	c.StatusHistory = make([]StatusEntry, len(o.StatusHistory))
	copy(c.StatusHistory, o.StatusHistory)
	if o.PaidAt != nil {
		t := *o.PaidAt
		c.PaidAt = &t
	}
	if o.PaymentInfo != nil {
		p := *o.PaymentInfo
		c.PaymentInfo = &p
	}
	if o.CodFee != nil {
		f := *o.CodFee
		c.CodFee = &f
	}
	return &c
}

// CreateInput is the checkout-to-order handoff record.
type CreateInput struct {
	UserID      string       `json:"userId"      validate:"required"`
	Items       []Item       `json:"items"       validate:"required,gt=0,dive"`
	Shipping    Shipping     `json:"shipping"`
	Subtotal    money.Money  `json:"subtotal"`
	ShippingFee money.Money  `json:"shippingFee"`
	Tax         money.Money  `json:"tax"`
	CodFee      *money.Money `json:"codFee,omitempty"`
	Total       money.Money  `json:"total"`
}

// Stats is the dashboard fold over the whole order collection.
type Stats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Paid         int     `json:"paid"`
	Preparing    int     `json:"preparing"`
	Shipping     int     `json:"shipping"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}
