package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL account repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const accountColumns = `id, email, name, password_hash, role, category, unit_ids, created_at, updated_at`

func scanAccount(scan func(...interface{}) error) (*Account, error) {
	a := &Account{}
	var unitIDs pq.StringArray
	err := scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &a.Category,
		&unitIDs, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.UnitIDs = []string(unitIDs)
	if a.UnitIDs == nil {
		a.UnitIDs = []string{}
	}
	return a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", apperr.ErrNotFound, id)
	}
	return a, err
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", apperr.ErrNotFound, email)
	}
	return a, err
}

func (r *postgresRepository) Upsert(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO accounts (id, email, name, password_hash, role, category, unit_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, name = EXCLUDED.name, password_hash = EXCLUDED.password_hash,
		    role = EXCLUDED.role, category = EXCLUDED.category, unit_ids = EXCLUDED.unit_ids,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.Email, a.Name, a.PasswordHash, a.Role, a.Category, pq.Array(a.UnitIDs),
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: email %s already registered", apperr.ErrConflict, a.Email)
	}
	return err
}
