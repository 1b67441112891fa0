package backoffice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

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
		r.Post("/api/v1/admin/seed", h.seed)
		r.Post("/api/v1/admin/accounts/{id}/tray-sync", h.traySync)
	})
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Seed(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) traySync(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.SyncTrayProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}
