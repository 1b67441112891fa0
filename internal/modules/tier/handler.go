package tier

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes the read-only tier registry.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/tiers", h.listTiers)
}

func (h *Handler) listTiers(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, http.StatusOK, map[string]interface{}{
		"default":    Default,
		"tiers":      All(),
		"categories": Categories(),
	})
}
