package sale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dulcesamigas/pos-backend/internal/httpx"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Handler exposes the sales ledger endpoints.
type Handler struct {
	service Service
	guard   crud.Guard
}

func NewHandler(service Service, guard crud.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	crud.Resource[*Sale, SaleRequest]{
		Name:    "ventas",
		Service: h.service,
		Guard:   h.guard,
		Extra: func(r chi.Router) {
			// Static segment, so chi matches it ahead of /{id}.
			r.With(h.guard("ventas", crud.ActionRead)).Get("/total-dia", h.totalToday)
			r.With(h.guard("ventas", crud.ActionRead)).Get("/{id}", h.get)
		},
	}.RegisterRoutes(r)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) totalToday(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalToday(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, total)
}
