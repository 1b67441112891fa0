package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type entry struct {
	session   Session
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewMemoryStore keeps sessions in process memory. Each Set restarts the ttl and
// drops sessions that have already expired.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{ttl: ttl, now: time.Now, entries: map[string]entry{}}
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, fmt.Errorf("%w: session %s", apperr.ErrNotFound, id)
	}
	s := e.session
	return &s, nil
}

func (m *memoryStore) Set(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
	m.entries[s.ID] = entry{session: *s, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *memoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
