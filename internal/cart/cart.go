// Package cart implements the cart pricing engine: line items keyed by
// product id, derived counts and subtotals, and the order summary consumed by
// checkout. Every mutation is written through to local storage.
package cart

import (
	"github.com/kaozx001/project-nawatakum/pkg/money"
)

// DefaultKey is the collection key a session cart persists under.
const DefaultKey = "techverse_cart"

// Item is one line of the cart: the product snapshot copied at add time plus
// a quantity. Price stays the display string captured from the catalog.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// LineTotal is the parsed unit price times quantity.
func (it Item) LineTotal() float64 {
	return money.Parse(it.Price) * float64(it.Quantity)
}

// Product is the snapshot source for a new line item.
type Product struct {
	ID    string `json:"id"    validate:"required"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Price string `json:"price"`
}

// Summary is the derived pricing breakdown for the current cart. It is
// recomputed on every read and never persisted.
type Summary struct {
	Subtotal  money.Money `json:"subtotal"`
	Shipping  money.Money `json:"shipping"`
	Tax       money.Money `json:"tax"`
	Total     money.Money `json:"total"`
	ItemCount int         `json:"itemCount"`
}
