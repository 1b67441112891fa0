package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/modules/auth"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes the session cart.
type Handler struct {
	service Service
	guard   httpx.Guard
}

func NewHandler(service Service, guard httpx.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(h.guard.Authenticate, h.guard.RequireUnit)
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addItem)
		r.Patch("/items/{product_id}", h.adjustItem)
		r.Delete("/items/{product_id}", h.removeItem)
	})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type adjustItemRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), auth.PrincipalFrom(r.Context()).SessionID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), auth.PrincipalFrom(r.Context()).SessionID); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	p := auth.PrincipalFrom(r.Context())
	c, err := h.service.AddProduct(r.Context(), p.SessionID, p.Unit.TierID, req.ProductID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

// PATCH /api/v1/cart/items/{product_id} {"delta": -1}
func (h *Handler) adjustItem(w http.ResponseWriter, r *http.Request) {
	var req adjustItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	c, err := h.service.AdjustQuantity(r.Context(), auth.PrincipalFrom(r.Context()).SessionID, chi.URLParam(r, "product_id"), req.Delta)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemoveProduct(r.Context(), auth.PrincipalFrom(r.Context()).SessionID, chi.URLParam(r, "product_id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}
