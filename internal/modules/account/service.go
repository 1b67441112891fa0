package account

import "context"

// Service defines the interface for account-related business logic.
type Service interface {
	// Register creates a representative with no business units; an administrator must authorize it.
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	// GetByEmail looks up an account by its normalized email.
	GetByEmail(ctx context.Context, email string) (*Account, error)
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error)
	CreateAccount(ctx context.Context, req UpsertRequest) (*Account, error)
	UpsertAccount(ctx context.Context, id string, req UpsertRequest) (*Account, error)
	// AssignUnits replaces the set of units a representative may bill to.
	AssignUnits(ctx context.Context, id string, unitIDs []string) (*Account, error)
}
