package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()
	repo := NewMemoryRepository()
	for _, p := range fixtureProducts() {
		require.NoError(t, repo.Upsert(context.Background(), p))
	}
	return NewService(repo, zap.NewNop()), repo
}

func TestStorefront_FiltersByTierAndHidesInactive(t *testing.T) {
	svc, _ := newTestService(t)

	sf, err := svc.Storefront(context.Background(), tier.Basic, Query{})
	require.NoError(t, err)
	assert.Equal(t, "Lojista B2B", sf.Tier.Label)
	assert.Equal(t, []string{"1"}, ids(sf.Products))
	assert.Len(t, sf.Categories, 2)

	sf, err = svc.Storefront(context.Background(), tier.VIP, Query{Search: "vip"})
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(sf.Products))
}

func TestOrderableProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.OrderableProduct(ctx, tier.Premium, "2")
	require.NoError(t, err)
	assert.Equal(t, "Máscara Revitalizante 500g", p.Name)

	_, err = svc.OrderableProduct(ctx, tier.Basic, "2")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.OrderableProduct(ctx, tier.VIP, "5")
	assert.ErrorIs(t, err, apperr.ErrForbidden, "inactive products cannot be ordered")

	_, err = svc.OrderableProduct(ctx, tier.VIP, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpsertProduct_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductRequest{Name: "", CategoryID: tier.CategoryKits})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.CreateProduct(ctx, ProductRequest{Name: "Kit", Price: decimal.NewFromInt(-1), CategoryID: tier.CategoryKits})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.CreateProduct(ctx, ProductRequest{Name: "Kit", Price: decimal.NewFromInt(10), CategoryID: "cat_unknown"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestUpsertProduct_PriceScale(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductRequest{Name: "Kit", Price: decimal.RequireFromString("89.999"), CategoryID: tier.CategoryKits})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	for _, price := range []string{"89.90", "89.9", "90", "89.900"} {
		p, err := svc.CreateProduct(ctx, ProductRequest{Name: "Kit", Price: decimal.RequireFromString(price), CategoryID: tier.CategoryKits})
		require.NoError(t, err, price)
		assert.Equal(t, decimal.RequireFromString(price).StringFixed(2), p.Price.StringFixed(2))
	}
}

func TestUpsertProduct_ReplacesExisting(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	inactive := false

	_, err := svc.UpsertProduct(ctx, "1", ProductRequest{
		Name:       "Shampoo Niklaus Pro 1L",
		Price:      decimal.RequireFromString("99.90"),
		Stock:      120,
		CategoryID: tier.CategoryProfessional,
		Active:     &inactive,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("99.90")))
	assert.False(t, stored.Active)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(all))
}

func TestCreateProduct_AssignsIDAndDefaultsActive(t *testing.T) {
	svc, _ := newTestService(t)
	p, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name:       "Óleo Reparador",
		Price:      decimal.RequireFromString("59.00"),
		CategoryID: tier.CategoryMaintenance,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Active)
}
