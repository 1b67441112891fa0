package unit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes the backoffice business unit endpoints.
type Handler struct {
	service Service
	guard   httpx.Guard
}

func NewHandler(service Service, guard httpx.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/admin/units", func(r chi.Router) {
		r.Use(h.guard.Authenticate, h.guard.RequireAdmin)
		r.Get("/", h.listUnits)
		r.Post("/", h.createUnit)
		r.Get("/{id}", h.getUnit)
		r.Put("/{id}", h.upsertUnit)
	})
}

func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.ListUnits(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, units)
}

func (h *Handler) getUnit(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUnit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}

func (h *Handler) createUnit(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	u, err := h.service.CreateUnit(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, u)
}

func (h *Handler) upsertUnit(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	u, err := h.service.UpsertUnit(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}
