package order

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type memoryRepo struct {
	mu     sync.RWMutex
	orders []*Order
}

func NewMemoryRepository() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Append(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.ID == o.ID {
			return fmt.Errorf("%w: order %s already exists", apperr.ErrConflict, o.ID)
		}
	}
	r.orders = append(r.orders, o.Clone())
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
}

func (r *memoryRepo) List(_ context.Context, unitIDs []string) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		if unitIDs == nil || slices.Contains(unitIDs, o.UnitID) {
			out = append(out, o.Clone())
		}
	}
	slices.SortStableFunc(out, func(a, b *Order) int { return b.PlacedAt.Compare(a.PlacedAt) })
	return out, nil
}
