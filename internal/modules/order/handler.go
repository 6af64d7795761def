package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dulcesamigas/pos-backend/internal/httpx"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Handler exposes the order intake and fulfillment endpoints. Intake is
// public; everything else sits behind the token middleware.
type Handler struct {
	service Service
	authn   func(http.Handler) http.Handler
	guard   crud.Guard
}

func NewHandler(service Service, authn func(http.Handler) http.Handler, guard crud.Guard) *Handler {
	return &Handler{service: service, authn: authn, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/pedidos", func(r chi.Router) {
		// Customers submit without an account.
		r.Post("/", h.submit)

		r.Group(func(r chi.Router) {
			r.Use(h.authn)
			r.With(h.guard("pedidos", crud.ActionRead)).Get("/", h.list)
			r.With(h.guard("pedidos", crud.ActionRead)).Get("/nuevos/contador", h.unseenCount)
			r.With(h.guard("pedidos", crud.ActionWrite)).Post("/marcar-vistos", h.markAllSeen)
			r.With(h.guard("pedidos", crud.ActionWrite)).Put("/{id}", h.updateStatus)
			r.With(h.guard("pedidos", crud.ActionWrite)).Post("/{id}/asignar", h.assignDriver)
			r.With(h.guard("pedidos", crud.ActionWrite)).Post("/{id}/convertir-a-venta", h.convert)
		})
	})

	r.Route("/api/repartidor", func(r chi.Router) {
		r.Use(h.authn)
		r.With(h.guard("repartidor", crud.ActionRead)).Get("/mis-pedidos", h.myOrders)
		r.With(h.guard("repartidor", crud.ActionWrite)).Post("/finalizar-entrega/{id}", h.finalizeDelivery)
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	o, err := h.service.Submit(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) unseenCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnseenCount(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) markAllSeen(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkAllSeen(r.Context()); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) assignDriver(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	o, err := h.service.AssignDriver(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	v, err := h.service.Convert(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.MyOrders(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) finalizeDelivery(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	v, err := h.service.FinalizeDelivery(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}
