package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/auth"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// principalGuard authenticates every request as p.
type principalGuard struct {
	p *auth.Principal
}

func (g principalGuard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), g.p)))
	})
}

func (g principalGuard) RequireAdmin(next http.Handler) http.Handler { return next }

func (g principalGuard) RequireUnit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UnitFrom(r.Context()) == nil {
			httpx.Respond(w, http.StatusConflict, map[string]string{"error": "select a business unit first"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func basicRep(u *unit.BusinessUnit) *auth.Principal {
	return &auth.Principal{
		SessionID: "s1",
		Account:   &account.Account{ID: "u2", Role: account.RoleRepresentative, UnitIDs: []string{"c1"}},
		Unit:      u,
	}
}

func cartRouter(t *testing.T, p *auth.Principal) http.Handler {
	r := chi.NewRouter()
	NewHandler(newTestService(t), principalGuard{p: p}).RegisterRoutes(r)
	return r
}

func TestHandler_CartFlow(t *testing.T) {
	router := cartRouter(t, basicRep(&unit.BusinessUnit{ID: "c1", TierID: tier.Basic}))

	steps := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantQty    []int
	}{
		{"add visible product", http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, http.StatusOK, []int{1}},
		{"add again increments", http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`, http.StatusOK, []int{2}},
		{"add product outside tier", http.MethodPost, "/api/v1/cart/items", `{"product_id":"2"}`, http.StatusForbidden, nil},
		{"add unknown product", http.MethodPost, "/api/v1/cart/items", `{"product_id":"404"}`, http.StatusNotFound, nil},
		{"malformed body", http.MethodPost, "/api/v1/cart/items", `{"product_id":`, http.StatusBadRequest, nil},
		{"increase by delta", http.MethodPatch, "/api/v1/cart/items/1", `{"delta":3}`, http.StatusOK, []int{5}},
		{"decrease floors at one", http.MethodPatch, "/api/v1/cart/items/1", `{"delta":-10}`, http.StatusOK, []int{1}},
		{"string delta rejected", http.MethodPatch, "/api/v1/cart/items/1", `{"delta":"-1"}`, http.StatusBadRequest, nil},
		{"adjust line not in cart", http.MethodPatch, "/api/v1/cart/items/2", `{"delta":1}`, http.StatusNotFound, nil},
		{"read cart", http.MethodGet, "/api/v1/cart", "", http.StatusOK, []int{1}},
		{"remove line", http.MethodDelete, "/api/v1/cart/items/1", "", http.StatusOK, []int{}},
		{"clear cart", http.MethodDelete, "/api/v1/cart", "", http.StatusNoContent, nil},
	}
	for _, step := range steps {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(step.method, step.path, strings.NewReader(step.body)))
		require.Equal(t, step.wantStatus, rec.Code, "%s: %s", step.name, rec.Body.String())

		if step.wantQty == nil {
			continue
		}
		var c Cart
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c), step.name)
		qty := make([]int, 0, len(c.Lines))
		for _, l := range c.Lines {
			qty = append(qty, l.Quantity)
		}
		assert.Equal(t, step.wantQty, qty, step.name)
	}
}

func TestHandler_RequiresSelectedUnit(t *testing.T) {
	router := cartRouter(t, basicRep(nil))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"1"}`)),
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code, req.Method)
	}
}
