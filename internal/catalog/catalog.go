// Package catalog is the read-only product source the cart snapshots from.
// The order engine never mutates it; product CRUD belongs to the back-office
// and only the id/name/image/price fields matter here.
package catalog

import (
	"sync"
)

// Product is the slice of the catalog record the cart cares about. Price is
// the display string the storefront renders.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Price string `json:"price"`
}

// Store holds the catalog in memory.
type Store struct {
	mu       sync.RWMutex
	products map[string]Product
	order    []string
}

// NewStore creates a catalog populated with the given products.
func NewStore(products []Product) *Store {
	s := &Store{products: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, exists := s.products[p.ID]; !exists {
			s.order = append(s.order, p.ID)
		}
		s.products[p.ID] = p
	}
	return s
}

// FindByID returns the product with the given id, or false.
func (s *Store) FindByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

// All returns every product in insertion order.
func (s *Store) All() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list
}

// Seed returns the stock catalog loaded on first run.
func Seed() []Product {
	return []Product{
		{ID: "1", Name: "NVIDIA GeForce RTX 4090", Image: "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=400&h=300&fit=crop", Price: "฿55,900"},
		{ID: "2", Name: "MacBook Pro 16\" M3 Max", Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=300&fit=crop", Price: "฿122,900"},
		{ID: "3", Name: "Sony WH-1000XM5", Image: "https://images.unsplash.com/photo-1546435770-a3e426bf472b?w=400&h=300&fit=crop", Price: "฿12,200"},
		{ID: "4", Name: "Samsung Galaxy S24 Ultra", Image: "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=400&h=300&fit=crop", Price: "฿43,900"},
		{ID: "5", Name: "iPad Pro 12.9\" M2", Image: "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400&h=300&fit=crop", Price: "฿39,900"},
		{ID: "6", Name: "Logitech MX Master 3S", Image: "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=400&h=300&fit=crop", Price: "฿3,990"},
	}
}
