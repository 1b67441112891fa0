package tray

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

func TestClient_FetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "Bearer tray-token", r.Header.Get("Authorization"))
		if r.URL.Query().Get("email") != "vip@salon.com" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"customers":[]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customers":[{"cnpj_ids":["c2","c3"],"group":"group_vip","description":"VIP"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tray-token", time.Second, zap.NewNop())

	p, err := c.FetchProfile(context.Background(), "vip@salon.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c3"}, p.UnitIDs)
	assert.Equal(t, tier.VIP, p.Group)

	_, err = c.FetchProfile(context.Background(), "ghost@salon.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tray-token", time.Second, zap.NewNop())
	_, err := c.FetchProfile(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSandboxClient(t *testing.T) {
	c := NewSandboxClient(0)
	ctx := context.Background()

	p, err := c.FetchProfile(ctx, "Parceiro.VIP@salon.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, p.UnitIDs)
	assert.Equal(t, tier.VIP, p.Group)

	p, err = c.FetchProfile(ctx, "vendedor@test.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, p.UnitIDs)
	assert.Equal(t, tier.Basic, p.Group)
}

func TestSandboxClient_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSandboxClient(time.Minute).FetchProfile(ctx, "a@b.com")
	assert.ErrorIs(t, err, context.Canceled)
}
