package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, Store) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client, ttl)
}

// StoreSuite runs the same contract against every Store implementation.
type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
	ctx      context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func (s *StoreSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, "missing")
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *StoreSuite) TestSetGetClear() {
	created := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.store.Set(s.ctx, &Session{ID: "s1", AccountID: "u2", CreatedAt: created}))

	got, err := s.store.Get(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal("u2", got.AccountID)
	s.Empty(got.UnitID)
	s.True(created.Equal(got.CreatedAt))

	got.UnitID = "c1"
	s.Require().NoError(s.store.Set(s.ctx, got))
	got, err = s.store.Get(s.ctx, "s1")
	s.Require().NoError(err)
	s.Equal("c1", got.UnitID)

	s.Require().NoError(s.store.Clear(s.ctx, "s1"))
	_, err = s.store.Get(s.ctx, "s1")
	s.ErrorIs(err, apperr.ErrNotFound)

	s.NoError(s.store.Clear(s.ctx, "s1"), "clearing twice is not an error")
}

func (s *StoreSuite) TestGetReturnsCopy() {
	s.Require().NoError(s.store.Set(s.ctx, &Session{ID: "s1", AccountID: "u1"}))
	got, err := s.store.Get(s.ctx, "s1")
	s.Require().NoError(err)
	got.UnitID = "c9"

	again, err := s.store.Get(s.ctx, "s1")
	s.Require().NoError(err)
	s.Empty(again.UnitID)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) Store { return NewMemoryStore(time.Hour) }})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		_, store := setupRedisStore(t, time.Hour)
		return store
	}})
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute).(*memoryStore)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &Session{ID: "s1", AccountID: "u1"}))
	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, store := setupRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &Session{ID: "s1", AccountID: "u1"}))
	assert.True(t, mr.Exists(keyPrefix+"s1"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"s1"))

	mr.FastForward(time.Minute)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
