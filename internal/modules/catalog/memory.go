package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type memoryRepo struct {
	mu       sync.RWMutex
	ids      []string
	products map[string]Product
}

// NewMemoryRepository keeps products in process memory, in insertion order.
func NewMemoryRepository() Repository {
	return &memoryRepo{products: map[string]Product{}}
}

func (r *memoryRepo) List(_ context.Context) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Product, 0, len(r.ids))
	for _, id := range r.ids {
		p := r.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
	}
	return &p, nil
}

func (r *memoryRepo) Upsert(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.products[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		r.ids = append(r.ids, p.ID)
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.products[p.ID] = *p
	return nil
}
