package account

import "context"

// Repository defines the interface for account data storage.
type Repository interface {
	List(ctx context.Context) ([]*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Upsert(ctx context.Context, a *Account) error
}
