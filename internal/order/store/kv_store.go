package store

import (
	"fmt"
	"sync"

	"github.com/kaozx001/project-nawatakum/internal/order"
	ordererrors "github.com/kaozx001/project-nawatakum/internal/order/errors"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
)

// ordersKey is the collection key the order records persist under.
const ordersKey = "techverse_orders"

// KVStore keeps the collection in memory and rewrites the whole document on
// every mutation, the same write pattern the local-storage original used.
type KVStore struct {
	mu     sync.RWMutex
	kv     storage.KV
	orders []order.Order
}

// NewKVStore loads the order collection from kv. A missing or malformed
// document yields an empty collection.
func NewKVStore(kv storage.KV) (*KVStore, error) {
	s := &KVStore{kv: kv}
	if _, err := kv.Load(ordersKey, &s.orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return s, nil
}

func (s *KVStore) All() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]order.Order, len(s.orders))
	copy(list, s.orders)
	return list
}

func (s *KVStore) ByID(id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, ordererrors.ErrOrderNotFound
}

func (s *KVStore) ByUser(userID string) []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []order.Order
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			list = append(list, s.orders[i])
		}
	}
	return list
}

func (s *KVStore) Prepend(o order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append([]order.Order{o}, s.orders...)
	return s.persist()
}

func (s *KVStore) Replace(o order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o
			return s.persist()
		}
	}
	return ordererrors.ErrOrderNotFound
}

func (s *KVStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			return true
		}
	}
	return false
}

// persist rewrites the collection document. Callers hold the write lock.
func (s *KVStore) persist() error {
	orders := s.orders
	if orders == nil {
		orders = []order.Order{}
	}
	if err := s.kv.Save(ordersKey, orders); err != nil {
		return fmt.Errorf("%w: %v", ordererrors.ErrPersistOrders, err)
	}
	return nil
}
