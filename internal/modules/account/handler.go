package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes the backoffice account endpoints.
type Handler struct {
	service Service
	guard   httpx.Guard
}

func NewHandler(service Service, guard httpx.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Authenticate, h.guard.RequireAdmin)
		r.Get("/api/v1/admin/accounts", h.listAccounts)
		r.Post("/api/v1/admin/accounts", h.createAccount)
		r.Get("/api/v1/admin/accounts/{id}", h.getAccount)
		r.Put("/api/v1/admin/accounts/{id}", h.upsertAccount)
	})
}

// GET /api/v1/admin/accounts?status=pending
func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context(), ListFilter(r.URL.Query().Get("status")))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, accounts)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, a)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	a, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, a)
}

func (h *Handler) upsertAccount(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	a, err := h.service.UpsertAccount(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, a)
}
