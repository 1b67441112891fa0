package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/catalog"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

// Products is the catalog capability the cart needs.
type Products interface {
	OrderableProduct(ctx context.Context, tierID tier.ID, id string) (*catalog.Product, error)
}

// Cart is the priced view of a session's lines.
type Cart struct {
	Lines []Line          `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func newCart(lines []Line) *Cart {
	if lines == nil {
		lines = []Line{}
	}
	return &Cart{Lines: lines, Count: Count(lines), Total: Total(lines)}
}

// Service defines cart operations for a session.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	// AddProduct adds one unit of a product the tier may order.
	AddProduct(ctx context.Context, sessionID string, tierID tier.ID, productID string) (*Cart, error)
	AdjustQuantity(ctx context.Context, sessionID, productID string, delta int) (*Cart, error)
	RemoveProduct(ctx context.Context, sessionID, productID string) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    Store
	products Products
	log      *zap.Logger
}

func NewService(store Store, products Products, log *zap.Logger) Service {
	return &service{store: store, products: products, log: log}
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCart(lines), nil
}

func (s *service) AddProduct(ctx context.Context, sessionID string, tierID tier.ID, productID string) (*Cart, error) {
	p, err := s.products.OrderableProduct(ctx, tierID, productID)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, sessionID, Add(lines, *p))
}

func (s *service) AdjustQuantity(ctx context.Context, sessionID, productID string, delta int) (*Cart, error) {
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !contains(lines, productID) {
		return nil, fmt.Errorf("%w: product %s is not in the cart", apperr.ErrNotFound, productID)
	}
	return s.save(ctx, sessionID, Adjust(lines, productID, delta))
}

func (s *service) RemoveProduct(ctx context.Context, sessionID, productID string) (*Cart, error) {
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, sessionID, Remove(lines, productID))
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func (s *service) save(ctx context.Context, sessionID string, lines []Line) (*Cart, error) {
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	s.log.Debug("cart updated", zap.String("session_id", sessionID), zap.Int("lines", len(lines)))
	return newCart(lines), nil
}
