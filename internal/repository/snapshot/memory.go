package snapshot

import (
	"context"
	"sync"

	"storefront-gateway/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewMemory returns an in-process Repository used in tests and in DSN-less
// deployments, where snapshots only survive for the life of the process.
func NewMemory() Repository {
	return &memoryRepo{carts: make(map[string]*domain.Cart)}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cart.Clone(), nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = cart.Clone()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
