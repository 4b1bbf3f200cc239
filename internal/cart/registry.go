package cart

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
)

// Registry hands out one cart per user. The browser original had a single
// session cart; serving several sessions from one process means each user id
// gets its own persisted cart document.
type Registry struct {
	mu      sync.Mutex
	kv      storage.KV
	pricing config.PricingConfig
	logger  *slog.Logger
	carts   map[string]*Service
}

func NewRegistry(kv storage.KV, pricing config.PricingConfig, logger *slog.Logger) *Registry {
	return &Registry{
		kv:      kv,
		pricing: pricing,
		logger:  logger,
		carts:   make(map[string]*Service),
	}
}

// ForUser returns the user's cart, loading it from storage on first access.
func (r *Registry) ForUser(userID string) (*Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.carts[userID]; ok {
		return svc, nil
	}
	svc, err := NewService(r.kv, fmt.Sprintf("%s_%s", DefaultKey, userID), r.pricing, r.logger)
	if err != nil {
		return nil, err
	}
	r.carts[userID] = svc
	return svc, nil
}
