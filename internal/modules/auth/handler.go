package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
)

// Handler exposes sign-up, sign-in and session endpoints.
type Handler struct {
	service Service
	guard   *Guard
}

func NewHandler(service Service, guard *Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/auth/register", h.register)
	r.Post("/api/v1/auth/login", h.login)
	r.With(h.guard.Authenticate).Post("/api/v1/auth/logout", h.logout)

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Use(h.guard.Authenticate)
		r.Get("/", h.describe)
		r.Put("/unit", h.selectUnit)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type selectUnitRequest struct {
	UnitID string `json:"unit_id"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	acc, err := h.service.Register(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, map[string]interface{}{
		"account": acc,
		"access":  AccessAwaitingAuthorization,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), PrincipalFrom(r.Context())); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) describe(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Describe(r.Context(), PrincipalFrom(r.Context()))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, view)
}

// PUT /api/v1/session/unit {"unit_id": "c1"}
func (h *Handler) selectUnit(w http.ResponseWriter, r *http.Request) {
	var req selectUnitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	view, err := h.service.SelectUnit(r.Context(), PrincipalFrom(r.Context()), req.UnitID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, view)
}
