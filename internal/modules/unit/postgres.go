package unit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL business unit repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const unitColumns = `id, name, legal_name, tax_id, responsible_tax_id, distributor, contact_email, phone,
	postal_code, street, street_number, district, city, state, complement, tier_id, created_at, updated_at`

func scanUnit(scan func(...interface{}) error) (*BusinessUnit, error) {
	u := &BusinessUnit{}
	err := scan(&u.ID, &u.Name, &u.LegalName, &u.TaxID, &u.ResponsibleTaxID, &u.Distributor,
		&u.ContactEmail, &u.Phone, &u.PostalCode, &u.Street, &u.Number, &u.District,
		&u.City, &u.State, &u.Complement, &u.TierID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*BusinessUnit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+unitColumns+` FROM business_units ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*BusinessUnit
	for rows.Next() {
		u, err := scanUnit(rows.Scan)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*BusinessUnit, error) {
	u, err := scanUnit(r.db.QueryRowContext(ctx,
		`SELECT `+unitColumns+` FROM business_units WHERE id = $1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: business unit %s", apperr.ErrNotFound, id)
	}
	return u, err
}

func (r *postgresRepository) Upsert(ctx context.Context, u *BusinessUnit) error {
	query := `
		INSERT INTO business_units (id, name, legal_name, tax_id, responsible_tax_id, distributor,
			contact_email, phone, postal_code, street, street_number, district, city, state, complement, tier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, legal_name = EXCLUDED.legal_name, tax_id = EXCLUDED.tax_id,
		    responsible_tax_id = EXCLUDED.responsible_tax_id, distributor = EXCLUDED.distributor,
		    contact_email = EXCLUDED.contact_email, phone = EXCLUDED.phone, postal_code = EXCLUDED.postal_code,
		    street = EXCLUDED.street, street_number = EXCLUDED.street_number, district = EXCLUDED.district,
		    city = EXCLUDED.city, state = EXCLUDED.state, complement = EXCLUDED.complement,
		    tier_id = EXCLUDED.tier_id, updated_at = NOW()
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		u.ID, u.Name, u.LegalName, u.TaxID, u.ResponsibleTaxID, u.Distributor,
		u.ContactEmail, u.Phone, u.PostalCode, u.Street, u.Number, u.District,
		u.City, u.State, u.Complement, u.TierID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}
