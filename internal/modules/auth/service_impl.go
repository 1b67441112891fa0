package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/session"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)

type service struct {
	accounts account.Service
	units    unit.Service
	sessions session.Store
	carts    CartClearer
	tokens   *Tokens
	log      *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	accounts account.Service,
	units unit.Service,
	sessions session.Store,
	carts CartClearer,
	tokens *Tokens,
	log *zap.Logger,
) Service {
	return &service{accounts: accounts, units: units, sessions: sessions, carts: carts, tokens: tokens, log: log}
}

func (s *service) Register(ctx context.Context, req account.RegisterRequest) (*account.Account, error) {
	return s.accounts.Register(ctx, req)
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	acc, err := s.accounts.GetByEmail(ctx, account.NormalizeEmail(email))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	sess := &session.Session{ID: uuid.NewString(), AccountID: acc.ID, CreatedAt: time.Now().UTC()}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, err
	}
	token, expiresAt, err := s.tokens.Issue(sess.ID, acc.ID)
	if err != nil {
		return nil, err
	}

	view, err := s.Describe(ctx, &Principal{SessionID: sess.ID, Account: acc})
	if err != nil {
		return nil, err
	}
	s.log.Info("signed in", zap.String("account_id", acc.ID), zap.String("access", string(view.Access)))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Session: view}, nil
}

func (s *service) Logout(ctx context.Context, p *Principal) error {
	if err := s.carts.Clear(ctx, p.SessionID); err != nil {
		return err
	}
	return s.sessions.Clear(ctx, p.SessionID)
}

func (s *service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(ctx, claims.Id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: session expired", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if sess.AccountID != claims.Subject {
		return nil, fmt.Errorf("%w: token does not match session", apperr.ErrUnauthorized)
	}

	acc, err := s.accounts.GetAccount(ctx, sess.AccountID)
	if errors.Is(err, apperr.ErrNotFound) {
		if err := s.sessions.Clear(ctx, sess.ID); err != nil {
			s.log.Warn("orphaned session not cleared", zap.String("session_id", sess.ID), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: account no longer exists", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	p := &Principal{SessionID: sess.ID, Account: acc}
	if sess.UnitID != "" && acc.CanAccess(sess.UnitID) {
		u, err := s.units.GetUnit(ctx, sess.UnitID)
		switch {
		case err == nil:
			p.Unit = u
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, err
		}
	}
	return p, nil
}

func (s *service) Describe(ctx context.Context, p *Principal) (*View, error) {
	units, err := s.units.AllowedFor(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	view := &View{Account: p.Account, Access: AccessAwaitingAuthorization, Units: units}
	if len(units) > 0 || p.Account.IsAdmin() {
		view.Access = AccessReady
	}
	if p.Unit != nil {
		t := p.Unit.Tier()
		view.Unit = p.Unit
		view.Tier = &t
	}
	return view, nil
}

func (s *service) SelectUnit(ctx context.Context, p *Principal, unitID string) (*View, error) {
	if !p.Account.CanAccess(unitID) {
		return nil, fmt.Errorf("%w: unit %s is not assigned to this account", apperr.ErrForbidden, unitID)
	}
	u, err := s.units.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, p.SessionID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: session expired", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, p.SessionID); err != nil {
		return nil, err
	}
	sess.UnitID = u.ID
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info("unit selected",
		zap.String("account_id", p.Account.ID),
		zap.String("unit_id", u.ID),
		zap.String("tier_id", string(u.TierID)))
	return s.Describe(ctx, &Principal{SessionID: p.SessionID, Account: p.Account, Unit: u})
}
