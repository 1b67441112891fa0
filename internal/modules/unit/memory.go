package unit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type memoryRepo struct {
	mu    sync.RWMutex
	ids   []string
	units map[string]BusinessUnit
}

// NewMemoryRepository keeps units in process memory, in insertion order.
func NewMemoryRepository() Repository {
	return &memoryRepo{units: map[string]BusinessUnit{}}
}

func (r *memoryRepo) List(_ context.Context) ([]*BusinessUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*BusinessUnit, 0, len(r.ids))
	for _, id := range r.ids {
		u := r.units[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*BusinessUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	if !ok {
		return nil, fmt.Errorf("%w: business unit %s", apperr.ErrNotFound, id)
	}
	return &u, nil
}

func (r *memoryRepo) Upsert(_ context.Context, u *BusinessUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.units[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		r.ids = append(r.ids, u.ID)
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.units[u.ID] = *u
	return nil
}
