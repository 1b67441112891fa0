package auth

import (
	"context"
	"time"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
)

// AccessState tells a signed-in account whether it can start ordering.
type AccessState string

const (
	AccessReady                 AccessState = "ready"
	AccessAwaitingAuthorization AccessState = "awaiting_authorization"
)

// Principal is the caller behind an authenticated request.
// Unit is nil until a unit is selected, or when the selection is no longer allowed.
type Principal struct {
	SessionID string
	Account   *account.Account
	Unit      *unit.BusinessUnit
}

// View is what the client shows for the current session.
type View struct {
	Account *account.Account     `json:"account"`
	Access  AccessState          `json:"access"`
	Units   []*unit.BusinessUnit `json:"units"`
	Unit    *unit.BusinessUnit   `json:"unit,omitempty"`
	Tier    *tier.Tier           `json:"tier,omitempty"`
}

// LoginResult carries the bearer token for a new session.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Session   *View     `json:"session"`
}

// CartClearer empties the cart bound to a session.
type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Register(ctx context.Context, req account.RegisterRequest) (*account.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, p *Principal) error
	// Authenticate resolves a bearer token into the caller, reloading the account.
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Describe(ctx context.Context, p *Principal) (*View, error)
	// SelectUnit changes the unit the session bills to and empties its cart.
	SelectUnit(ctx context.Context, p *Principal, unitID string) (*View, error)
}
