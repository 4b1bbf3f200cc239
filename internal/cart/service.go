package cart

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/money"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
)

// Service owns one cart. Line items keep insertion order; at most one line
// exists per product id. All operations are safe for concurrent use, and
// every mutation rewrites the persisted cart document.
type Service struct {
	mu      sync.RWMutex
	kv      storage.KV
	key     string
	pricing config.PricingConfig
	items   []Item
	logger  *slog.Logger
}

// NewService loads the cart persisted under key. A missing or malformed
// document yields an empty cart.
func NewService(kv storage.KV, key string, pricing config.PricingConfig, logger *slog.Logger) (*Service, error) {
	s := &Service{
		kv:      kv,
		key:     key,
		pricing: pricing,
		logger:  logger.With("component", "cart"),
	}
	if _, err := kv.Load(key, &s.items); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s, nil
}

// Add puts quantity units of product into the cart. An existing line for the
// same product id is incremented; otherwise a new line is appended with a
// snapshot of the product fields. quantity <= 0 is a caller bug and no-ops.
func (s *Service) Add(product Product, quantity int) error {
	if quantity <= 0 {
		s.logger.Warn("Ignoring add with non-positive quantity", "product_id", product.ID, "quantity", quantity)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			return s.persist()
		}
	}
	s.items = append(s.items, Item{
		ID:       product.ID,
		Name:     product.Name,
		Image:    product.Image,
		Price:    product.Price,
		Quantity: quantity,
	})
	return s.persist()
}

// Remove deletes the line item for productID. Removing an absent id is a
// no-op; calling it twice leaves the same cart as once.
func (s *Service) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// SetQuantity sets the line item's quantity to an absolute value.
// quantity <= 0 behaves exactly like Remove.
func (s *Service) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist()
}

// Items returns a copy of the current line items in insertion order.
func (s *Service) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Count is the sum of all line item quantities.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked()
}

// Subtotal is the sum of parsed unit price times quantity over all lines.
func (s *Service) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subtotalLocked()
}

// Summary derives the pricing breakdown from the current cart: shipping is
// waived at the free-shipping threshold, tax applies to the subtotal, total
// is the exact sum of the three.
func (s *Service) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := s.subtotalLocked()
	shipping := s.pricing.ShippingFee
	if subtotal >= s.pricing.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * s.pricing.TaxRate
	return Summary{
		Subtotal:  money.New(subtotal),
		Shipping:  money.New(shipping),
		Tax:       money.New(tax),
		Total:     money.New(subtotal + shipping + tax),
		ItemCount: s.countLocked(),
	}
}

func (s *Service) countLocked() int {
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

func (s *Service) subtotalLocked() float64 {
	total := 0.0
	for _, it := range s.items {
		total += it.LineTotal()
	}
	return total
}

// persist rewrites the cart document. Callers hold the write lock.
func (s *Service) persist() error {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	if err := s.kv.Save(s.key, items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
