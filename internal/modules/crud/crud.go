// Package crud mounts the uniform route set shared by every
// soft-deletable resource: active listing, trash listing, create,
// update, soft delete, restore and purge.
package crud

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dulcesamigas/pos-backend/internal/httpx"
)

// Soft-delete flag values. A missing or empty flag on legacy rows is
// treated as active.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Actions evaluated by the authorization policy.
const (
	ActionRead    = "read"
	ActionWrite   = "write"
	ActionDelete  = "delete"
	ActionTrash   = "trash"
	ActionRestore = "restore"
	ActionPurge   = "purge"
)

// Service is the behavior a resource must provide to be mounted.
type Service[T any, Req any] interface {
	List(ctx context.Context) ([]T, error)
	ListTrash(ctx context.Context) ([]T, error)
	Create(ctx context.Context, req Req) (T, error)
	Update(ctx context.Context, id string, req Req) (T, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
}

// Guard produces the authorization middleware for one (resource, action).
type Guard func(resource, action string) func(http.Handler) http.Handler

// Resource binds a service to its route segment under /api.
type Resource[T any, Req any] struct {
	// Name is the route segment, e.g. "productos".
	Name    string
	Service Service[T, Req]
	Guard   Guard
	// Extra registers resource-specific routes inside the same subtree.
	Extra func(r chi.Router)
}

func (res Resource[T, Req]) RegisterRoutes(r chi.Router) {
	r.Route("/api/"+res.Name, func(r chi.Router) {
		r.With(res.Guard(res.Name, ActionRead)).Get("/", res.list)
		r.With(res.Guard(res.Name, ActionTrash)).Get("/papelera", res.listTrash)
		r.With(res.Guard(res.Name, ActionWrite)).Post("/", res.create)
		r.With(res.Guard(res.Name, ActionWrite)).Put("/{id}", res.update)
		r.With(res.Guard(res.Name, ActionDelete)).Delete("/{id}", res.softDelete)
		r.With(res.Guard(res.Name, ActionRestore)).Put("/{id}/restaurar", res.restore)
		r.With(res.Guard(res.Name, ActionPurge)).Delete("/{id}/permanente", res.purge)
		if res.Extra != nil {
			res.Extra(r)
		}
	})
}

func (res Resource[T, Req]) list(w http.ResponseWriter, r *http.Request) {
	items, err := res.Service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (res Resource[T, Req]) listTrash(w http.ResponseWriter, r *http.Request) {
	items, err := res.Service.ListTrash(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (res Resource[T, Req]) create(w http.ResponseWriter, r *http.Request) {
	var req Req
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := res.Service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (res Resource[T, Req]) update(w http.ResponseWriter, r *http.Request) {
	var req Req
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	item, err := res.Service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (res Resource[T, Req]) softDelete(w http.ResponseWriter, r *http.Request) {
	if err := res.Service.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (res Resource[T, Req]) restore(w http.ResponseWriter, r *http.Request) {
	if err := res.Service.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (res Resource[T, Req]) purge(w http.ResponseWriter, r *http.Request) {
	if err := res.Service.Purge(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
