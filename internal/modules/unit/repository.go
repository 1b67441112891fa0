package unit

import "context"

// Repository defines business unit persistence.
type Repository interface {
	List(ctx context.Context) ([]*BusinessUnit, error)
	GetByID(ctx context.Context, id string) (*BusinessUnit, error)
	Upsert(ctx context.Context, u *BusinessUnit) error
}
