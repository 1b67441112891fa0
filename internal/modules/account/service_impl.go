package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type service struct {
	repo       Repository
	log        *zap.Logger
	bcryptCost int
}

// NewService creates a new account service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, bcryptCost: bcrypt.DefaultCost}
}

// NormalizeEmail is the form under which emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	email := NormalizeEmail(req.Email)
	if err := validateIdentity(req.Name, email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", apperr.ErrInvalid)
	}
	category := req.Category
	if category == "" {
		category = Categories[0]
	}
	if !slices.Contains(Categories, category) {
		return nil, fmt.Errorf("%w: unknown business category %q", apperr.ErrInvalid, category)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperr.ErrConflict, email)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	a := &Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         RoleRepresentative,
		Category:     category,
		UnitIDs:      []string{},
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("representative registered", zap.String("account_id", a.ID), zap.String("category", category))
	return a, nil
}

func (s *service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *service) ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	switch filter {
	case FilterAll:
		return all, nil
	case FilterPending:
		return slices.DeleteFunc(all, func(a *Account) bool { return !a.Pending() }), nil
	case FilterActive:
		return slices.DeleteFunc(all, func(a *Account) bool { return a.IsAdmin() || a.Pending() }), nil
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", apperr.ErrInvalid, filter)
	}
}

func (s *service) CreateAccount(ctx context.Context, req UpsertRequest) (*Account, error) {
	return s.UpsertAccount(ctx, uuid.NewString(), req)
}

func (s *service) UpsertAccount(ctx context.Context, id string, req UpsertRequest) (*Account, error) {
	email := NormalizeEmail(req.Email)
	if err := validateIdentity(req.Name, email); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = RoleRepresentative
	}
	if role != RoleRepresentative && role != RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrInvalid, role)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	a := &Account{
		ID:       id,
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Role:     role,
		Category: req.Category,
		UnitIDs:  dedupe(req.UnitIDs),
	}
	switch {
	case req.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = string(hash)
	case existing != nil:
		a.PasswordHash = existing.PasswordHash
	default:
		return nil, fmt.Errorf("%w: password is required for a new account", apperr.ErrInvalid)
	}

	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("account saved",
		zap.String("account_id", a.ID),
		zap.String("role", string(a.Role)),
		zap.Int("units", len(a.UnitIDs)))
	return a, nil
}

func (s *service) AssignUnits(ctx context.Context, id string, unitIDs []string) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.UnitIDs = dedupe(unitIDs)
	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func validateIdentity(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", apperr.ErrInvalid, email)
	}
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
