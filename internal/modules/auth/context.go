package auth

import (
	"context"

	"github.com/niklaus/b2b-portal/internal/modules/unit"
)

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom returns the authenticated caller, or nil outside Authenticate.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}

// UnitFrom returns the unit the caller is billing to. It is non-nil behind RequireUnit.
func UnitFrom(ctx context.Context) *unit.BusinessUnit {
	if p := PrincipalFrom(ctx); p != nil {
		return p.Unit
	}
	return nil
}
