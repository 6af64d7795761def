package customer

import (
	"github.com/go-chi/chi/v5"

	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Handler exposes the customer endpoints.
type Handler struct {
	service Service
	guard   crud.Guard
}

func NewHandler(service Service, guard crud.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	crud.Resource[*Customer, CustomerRequest]{
		Name:    "clientes",
		Service: h.service,
		Guard:   h.guard,
	}.RegisterRoutes(r)
}
