package account

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type memoryRepository struct {
	mu       sync.RWMutex
	ids      []string
	accounts map[string]*Account
}

// NewMemoryRepository keeps accounts in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: map[string]*Account{}}
}

func (r *memoryRepository) List(_ context.Context) ([]*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Account, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.accounts[id].Clone())
	}
	return out, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperr.ErrNotFound, id)
	}
	return a.Clone(), nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: account %s", apperr.ErrNotFound, email)
}

func (r *memoryRepository) Upsert(_ context.Context, a *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, other := range r.accounts {
		if id != a.ID && other.Email == a.Email {
			return fmt.Errorf("%w: email %s already registered", apperr.ErrConflict, a.Email)
		}
	}
	now := time.Now().UTC()
	if existing, ok := r.accounts[a.ID]; ok {
		a.CreatedAt = existing.CreatedAt
	} else {
		r.ids = append(r.ids, a.ID)
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.accounts[a.ID] = a.Clone()
	return nil
}
