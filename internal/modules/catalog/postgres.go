package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id,name,price,stock,image,category,category_id,active,created_at,updated_at`

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Image, &p.Category,
		&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
	}
	return p, err
}

func (r *postgresRepo) Upsert(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, price, stock, image, category, category_id, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE
		SET name=EXCLUDED.name, price=EXCLUDED.price, stock=EXCLUDED.stock,
		    image=EXCLUDED.image, category=EXCLUDED.category,
		    category_id=EXCLUDED.category_id, active=EXCLUDED.active, updated_at=NOW()
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Price, p.Stock, p.Image, p.Category, p.CategoryID, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}
