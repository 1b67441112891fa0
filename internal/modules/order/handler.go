package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/modules/auth"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes checkout and order history.
type Handler struct {
	service Service
	guard   httpx.Guard
}

func NewHandler(service Service, guard httpx.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(h.guard.Authenticate)
		r.With(h.guard.RequireUnit).Post("/", h.checkout)
		r.Get("/", h.history)
		r.Get("/{id}", h.getOrder)
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Checkout(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, o)
}

// GET /api/v1/orders?unit_id=c1
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.History(r.Context(), auth.PrincipalFrom(r.Context()).Account, r.URL.Query().Get("unit_id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), auth.PrincipalFrom(r.Context()).Account, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}
