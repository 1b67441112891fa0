package order

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/auth"
	"github.com/niklaus/b2b-portal/internal/modules/cart"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

// Carts is the cart capability checkout needs.
type Carts interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// Service defines the order business logic.
type Service interface {
	// Checkout turns the session cart into an order for the selected unit and empties the cart.
	// On any failure the cart is left as it was.
	Checkout(ctx context.Context, p *auth.Principal) (*Order, error)
	// History lists orders of the units acc may access, most recent first.
	// A non-empty unitID narrows the list to that unit.
	History(ctx context.Context, acc *account.Account, unitID string) ([]*Order, error)
	GetOrder(ctx context.Context, acc *account.Account, id string) (*Order, error)
}

type service struct {
	repo          Repository
	assembler     *Assembler
	carts         Carts
	submitTimeout time.Duration
	log           *zap.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, assembler *Assembler, carts Carts, submitTimeout time.Duration, log *zap.Logger) Service {
	return &service{repo: repo, assembler: assembler, carts: carts, submitTimeout: submitTimeout, log: log}
}

func (s *service) Checkout(ctx context.Context, p *auth.Principal) (*Order, error) {
	if p.Unit == nil {
		return nil, fmt.Errorf("%w: no business unit selected", apperr.ErrConflict)
	}
	c, err := s.carts.Get(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperr.ErrInvalid)
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()
	o, err := s.assembler.Create(submitCtx, p.Unit, c.Lines, c.Total)
	if err != nil {
		s.log.Warn("order submission failed",
			zap.String("unit_id", p.Unit.ID),
			zap.String("account_id", p.Account.ID),
			zap.Error(err))
		return nil, err
	}
	if err := s.repo.Append(ctx, o); err != nil {
		return nil, fmt.Errorf("record order %s: %w", o.ID, err)
	}

	if err := s.carts.Clear(ctx, p.SessionID); err != nil {
		s.log.Error("cart not cleared after order", zap.String("order_id", o.ID), zap.Error(err))
	}
	s.log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("unit_id", o.UnitID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(o.Items)))
	return o, nil
}

func (s *service) History(ctx context.Context, acc *account.Account, unitID string) ([]*Order, error) {
	var unitIDs []string
	switch {
	case unitID != "":
		if !acc.CanAccess(unitID) {
			return nil, fmt.Errorf("%w: unit %s is not assigned to this account", apperr.ErrForbidden, unitID)
		}
		unitIDs = []string{unitID}
	case !acc.IsAdmin():
		unitIDs = append([]string{}, acc.UnitIDs...)
	}
	return s.repo.List(ctx, unitIDs)
}

func (s *service) GetOrder(ctx context.Context, acc *account.Account, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !acc.CanAccess(o.UnitID) {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
	}
	return o, nil
}
