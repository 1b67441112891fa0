package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, unit_id, unit_tax_id, placed_at, total, status, payment_link, items`

// Append stores the order with its lines as a JSONB snapshot.
func (r *postgresRepo) Append(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.UnitID, o.UnitTaxID, o.PlacedAt, o.Total, o.Status, o.PaymentLink, items)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: order %s already exists", apperr.ErrConflict, o.ID)
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, id)
	}
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, unitIDs []string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if unitIDs != nil {
		query += ` WHERE unit_id = ANY($1)`
		args = append(args, pq.Array(unitIDs))
	}
	query += ` ORDER BY placed_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var items []byte
	if err := scan(&o.ID, &o.UnitID, &o.UnitTaxID, &o.PlacedAt, &o.Total, &o.Status, &o.PaymentLink, &items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	return o, nil
}
