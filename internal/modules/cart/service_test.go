package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/catalog"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	repo := catalog.NewMemoryRepository()
	for _, p := range []catalog.Product{shampoo, mask} {
		require.NoError(t, repo.Upsert(context.Background(), &p))
	}
	return NewService(NewMemoryStore(time.Hour), catalog.NewService(repo, zap.NewNop()), zap.NewNop())
}

func TestAddProduct_RespectsTier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.AddProduct(ctx, "s1", tier.Basic, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count)

	_, err = svc.AddProduct(ctx, "s1", tier.Basic, "2")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.AddProduct(ctx, "s1", tier.VIP, "404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	c, err = svc.AddProduct(ctx, "s1", tier.Premium, "2")
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2)
}

func TestAdjustAndRemove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "s1", tier.Premium, "1")
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "s1", tier.Premium, "2")
	require.NoError(t, err)

	c, err := svc.AdjustQuantity(ctx, "s1", "2", 1)
	require.NoError(t, err)
	assert.Equal(t, "239.90", c.Total.StringFixed(2))

	c, err = svc.AdjustQuantity(ctx, "s1", "1", -3)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	_, err = svc.AdjustQuantity(ctx, "s1", "3", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	c, err = svc.RemoveProduct(ctx, "s1", "1")
	require.NoError(t, err)
	assert.Equal(t, "150.00", c.Total.StringFixed(2))

	require.NoError(t, svc.Clear(ctx, "s1"))
	c, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, c.Lines)
	assert.Empty(t, c.Lines)
	assert.True(t, c.Total.IsZero())
}
