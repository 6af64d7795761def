package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/httpx"
)

// Handler exposes the authentication endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
	r.With(Middleware(h.service)).Post("/auth/logout", h.logout)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.Error(w, apperr.E(apperr.Invalid, "username and password are required"))
		return
	}

	creds, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, creds)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.Error(w, apperr.E(apperr.Unauthenticated, "no token to revoke"))
		return
	}
	if err := h.service.Logout(r.Context(), claims); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
