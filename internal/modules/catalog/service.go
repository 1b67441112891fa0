package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

// Service defines catalog business logic.
type Service interface {
	// Storefront lists what a unit of the given tier may order, narrowed by q.
	Storefront(ctx context.Context, tierID tier.ID, q Query) (*Storefront, error)
	// OrderableProduct returns the product if a unit of the given tier may add it to a cart.
	OrderableProduct(ctx context.Context, tierID tier.ID, id string) (*Product, error)

	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	UpsertProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Storefront(ctx context.Context, tierID tier.ID, q Query) (*Storefront, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q.ActiveOnly = true
	return &Storefront{
		Tier:       tier.Resolve(tierID),
		Categories: VisibleCategories(tierID),
		Products:   Narrow(VisibleProducts(all, tierID), q),
	}, nil
}

func (s *service) OrderableProduct(ctx context.Context, tierID tier.ID, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active || !tier.Resolve(tierID).Allows(p.CategoryID) {
		return nil, fmt.Errorf("%w: product %s is not available for this unit", apperr.ErrForbidden, id)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	return s.UpsertProduct(ctx, uuid.NewString(), req)
}

func (s *service) UpsertProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	p := &Product{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price,
		Stock:      req.Stock,
		Image:      req.Image,
		Category:   req.Category,
		CategoryID: req.CategoryID,
		Active:     active,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save product %s: %w", id, err)
	}
	s.log.Info("product saved", zap.String("product_id", id), zap.String("category_id", string(p.CategoryID)))
	return p, nil
}

func (r ProductRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", apperr.ErrInvalid)
	}
	if !r.Price.Equal(r.Price.Round(2)) {
		return fmt.Errorf("%w: price %s has more than two decimal places", apperr.ErrInvalid, r.Price)
	}
	if r.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", apperr.ErrInvalid)
	}
	if !tier.KnownCategory(r.CategoryID) {
		return fmt.Errorf("%w: unknown category_id %q", apperr.ErrInvalid, r.CategoryID)
	}
	return nil
}
