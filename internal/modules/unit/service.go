package unit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

// Service defines business unit logic.
type Service interface {
	ListUnits(ctx context.Context) ([]*BusinessUnit, error)
	GetUnit(ctx context.Context, id string) (*BusinessUnit, error)
	CreateUnit(ctx context.Context, req UnitRequest) (*BusinessUnit, error)
	UpsertUnit(ctx context.Context, id string, req UnitRequest) (*BusinessUnit, error)
	// AllowedFor lists the units acc may bill to.
	AllowedFor(ctx context.Context, acc *account.Account) ([]*BusinessUnit, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

// Allowed filters units down to those acc may bill to, keeping their order.
// Admins may bill to every unit.
func Allowed(acc *account.Account, units []*BusinessUnit) []*BusinessUnit {
	out := make([]*BusinessUnit, 0, len(units))
	for _, u := range units {
		if acc.CanAccess(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

func (s *service) ListUnits(ctx context.Context) ([]*BusinessUnit, error) {
	return s.repo.List(ctx)
}

func (s *service) GetUnit(ctx context.Context, id string) (*BusinessUnit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AllowedFor(ctx context.Context, acc *account.Account) ([]*BusinessUnit, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Allowed(acc, all), nil
}

func (s *service) CreateUnit(ctx context.Context, req UnitRequest) (*BusinessUnit, error) {
	return s.UpsertUnit(ctx, uuid.NewString(), req)
}

func (s *service) UpsertUnit(ctx context.Context, id string, req UnitRequest) (*BusinessUnit, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(req.TaxID) == "" {
		return nil, fmt.Errorf("%w: tax_id is required", apperr.ErrInvalid)
	}
	tierID := req.TierID
	if tierID == "" {
		tierID = tier.Default
	}
	if _, ok := tier.Lookup(tierID); !ok {
		return nil, fmt.Errorf("%w: unknown tier_id %q", apperr.ErrInvalid, req.TierID)
	}

	u := &BusinessUnit{
		ID:               id,
		Name:             strings.TrimSpace(req.Name),
		LegalName:        req.LegalName,
		TaxID:            strings.TrimSpace(req.TaxID),
		ResponsibleTaxID: req.ResponsibleTaxID,
		Distributor:      req.Distributor,
		ContactEmail:     req.ContactEmail,
		Phone:            req.Phone,
		PostalCode:       req.PostalCode,
		Street:           req.Street,
		Number:           req.Number,
		District:         req.District,
		City:             req.City,
		State:            req.State,
		Complement:       req.Complement,
		TierID:           tierID,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("save business unit %s: %w", id, err)
	}
	s.log.Info("business unit saved", zap.String("unit_id", id), zap.String("tier_id", string(tierID)))
	return u, nil
}
