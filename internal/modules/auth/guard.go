package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Guard implements httpx.Guard on top of the auth service.
type Guard struct {
	service Service
}

var _ httpx.Guard = (*Guard)(nil)

func NewGuard(service Service) *Guard {
	return &Guard{service: service}
}

func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.Error(w, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthorized))
			return
		}
		p, err := g.service.Authenticate(r.Context(), token)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if p == nil {
			httpx.Error(w, fmt.Errorf("%w: not signed in", apperr.ErrUnauthorized))
			return
		}
		if !p.Account.IsAdmin() {
			httpx.Error(w, fmt.Errorf("%w: administrators only", apperr.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUnit rejects requests whose session has no usable unit with 409 and the access state.
func (g *Guard) RequireUnit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if p == nil {
			httpx.Error(w, fmt.Errorf("%w: not signed in", apperr.ErrUnauthorized))
			return
		}
		if p.Unit != nil {
			next.ServeHTTP(w, r)
			return
		}
		view, err := g.service.Describe(r.Context(), p)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		msg := "select a business unit first"
		if view.Access == AccessAwaitingAuthorization {
			msg = "account is awaiting authorization"
		}
		httpx.Respond(w, http.StatusConflict, map[string]interface{}{
			"error":  msg,
			"access": view.Access,
		})
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
