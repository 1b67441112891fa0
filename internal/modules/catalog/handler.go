package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/modules/auth"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	guard   httpx.Guard
}

func NewHandler(service Service, guard httpx.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(h.guard.Authenticate, h.guard.RequireUnit).Get("/api/v1/catalog", h.storefront)

	r.Route("/api/v1/admin/products", func(r chi.Router) {
		r.Use(h.guard.Authenticate, h.guard.RequireAdmin)
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.upsertProduct)
	})
}

// GET /api/v1/catalog?q=shampoo&category=cat_prof
func (h *Handler) storefront(w http.ResponseWriter, r *http.Request) {
	u := auth.UnitFrom(r.Context())
	q := Query{
		Search:     r.URL.Query().Get("q"),
		CategoryID: tier.CategoryID(r.URL.Query().Get("category")),
	}
	sf, err := h.service.Storefront(r.Context(), u.TierID, q)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, sf)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) upsertProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	p, err := h.service.UpsertProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}
