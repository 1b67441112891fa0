package backoffice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/catalog"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/modules/tray"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Products int `json:"products"`
	Units    int `json:"units"`
	Accounts int `json:"accounts"`
}

// SyncResult reports a Tray profile sync.
type SyncResult struct {
	Account     *account.Account `json:"account"`
	Group       tier.ID          `json:"group"`
	Description string           `json:"description"`
	// Skipped lists unit ids Tray returned that do not exist locally.
	Skipped []string `json:"skipped"`
}

// Service holds the backoffice maintenance operations.
type Service interface {
	// Seed upserts the demo catalog, units and accounts. Running it again restores them.
	Seed(ctx context.Context) (*SeedResult, error)
	// SeedMissing writes only the demo records that do not exist yet. Existing records,
	// including ones an administrator edited, are left as they are.
	SeedMissing(ctx context.Context) (*SeedResult, error)
	// SyncTrayProfile replaces the account's units with those Tray assigns to its email.
	SyncTrayProfile(ctx context.Context, accountID string) (*SyncResult, error)
}

type service struct {
	accounts account.Service
	units    unit.Service
	products catalog.Service
	tray     tray.Client
	log      *zap.Logger
}

func NewService(accounts account.Service, units unit.Service, products catalog.Service, trayClient tray.Client, log *zap.Logger) Service {
	return &service{accounts: accounts, units: units, products: products, tray: trayClient, log: log}
}

func (s *service) Seed(ctx context.Context) (*SeedResult, error) {
	return s.seed(ctx, true)
}

func (s *service) SeedMissing(ctx context.Context) (*SeedResult, error) {
	return s.seed(ctx, false)
}

// seed writes the demo records. Without restore a record that already exists is skipped.
func (s *service) seed(ctx context.Context, restore bool) (*SeedResult, error) {
	res := &SeedResult{}
	for _, p := range seedProducts {
		write, err := s.shouldWrite(restore, func() error {
			_, err := s.products.GetProduct(ctx, p.id)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("seed product %s: %w", p.id, err)
		}
		if !write {
			continue
		}
		if _, err := s.products.UpsertProduct(ctx, p.id, p.req); err != nil {
			return nil, fmt.Errorf("seed product %s: %w", p.id, err)
		}
		res.Products++
	}
	for _, u := range seedUnits {
		write, err := s.shouldWrite(restore, func() error {
			_, err := s.units.GetUnit(ctx, u.id)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("seed unit %s: %w", u.id, err)
		}
		if !write {
			continue
		}
		if _, err := s.units.UpsertUnit(ctx, u.id, u.req); err != nil {
			return nil, fmt.Errorf("seed unit %s: %w", u.id, err)
		}
		res.Units++
	}
	for _, a := range seedAccounts {
		write, err := s.shouldWrite(restore, func() error {
			_, err := s.accounts.GetAccount(ctx, a.id)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("seed account %s: %w", a.id, err)
		}
		if !write {
			continue
		}
		if _, err := s.accounts.UpsertAccount(ctx, a.id, a.req); err != nil {
			return nil, fmt.Errorf("seed account %s: %w", a.id, err)
		}
		res.Accounts++
	}
	s.log.Info("seed data written",
		zap.Bool("restore", restore),
		zap.Int("products", res.Products),
		zap.Int("units", res.Units),
		zap.Int("accounts", res.Accounts))
	return res, nil
}

// shouldWrite reports whether a seed record must be written. lookup returns nil when
// the record exists and an apperr.ErrNotFound error when it does not.
func (s *service) shouldWrite(restore bool, lookup func() error) (bool, error) {
	if restore {
		return true, nil
	}
	err := lookup()
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, apperr.ErrNotFound):
		return true, nil
	default:
		return false, err
	}
}

func (s *service) SyncTrayProfile(ctx context.Context, accountID string) (*SyncResult, error) {
	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	profile, err := s.tray.FetchProfile(ctx, acc.Email)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(profile.UnitIDs))
	skipped := []string{}
	for _, id := range profile.UnitIDs {
		_, err := s.units.GetUnit(ctx, id)
		switch {
		case err == nil:
			kept = append(kept, id)
		case errors.Is(err, apperr.ErrNotFound):
			skipped = append(skipped, id)
		default:
			return nil, err
		}
	}

	acc, err = s.accounts.AssignUnits(ctx, accountID, kept)
	if err != nil {
		return nil, err
	}
	s.log.Info("tray profile synced",
		zap.String("account_id", accountID),
		zap.String("group", string(profile.Group)),
		zap.Strings("units", kept),
		zap.Strings("skipped", skipped))
	return &SyncResult{Account: acc, Group: profile.Group, Description: profile.Description, Skipped: skipped}, nil
}
