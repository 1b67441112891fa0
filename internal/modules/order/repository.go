package order

import "context"

// Repository defines data access for orders. Orders are append-only.
type Repository interface {
	Append(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// List returns orders most recent first. A nil unitIDs lists every unit.
	List(ctx context.Context, unitIDs []string) ([]*Order, error)
}
