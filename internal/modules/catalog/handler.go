package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dulcesamigas/pos-backend/internal/httpx"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Handler mounts the three catalog collections on the shared crud
// factory. Products get the extra out-of-stock toggle.
type Handler struct {
	products Service
	toppings Service
	syrups   Service
	guard    crud.Guard
}

func NewHandler(products, toppings, syrups Service, guard crud.Guard) *Handler {
	return &Handler{products: products, toppings: toppings, syrups: syrups, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	crud.Resource[*Item, ItemRequest]{
		Name:    "productos",
		Service: h.products,
		Guard:   h.guard,
		Extra: func(r chi.Router) {
			r.With(h.guard("productos", crud.ActionWrite)).
				Put("/{id}/agotado", h.toggleOutOfStock)
		},
	}.RegisterRoutes(r)

	crud.Resource[*Item, ItemRequest]{
		Name:    "toppings",
		Service: h.toppings,
		Guard:   h.guard,
	}.RegisterRoutes(r)

	crud.Resource[*Item, ItemRequest]{
		Name:    "jarabes",
		Service: h.syrups,
		Guard:   h.guard,
	}.RegisterRoutes(r)
}

func (h *Handler) toggleOutOfStock(w http.ResponseWriter, r *http.Request) {
	var req StockRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := h.products.SetOutOfStock(r.Context(), chi.URLParam(r, "id"), req.OutOfStock)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}
