package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Service defines the business logic for one catalog kind.
type Service interface {
	crud.Service[*Item, ItemRequest]

	// SetOutOfStock toggles availability; only meaningful for products.
	SetOutOfStock(ctx context.Context, id string, outOfStock bool) (*Item, error)
}

type service struct {
	store Store
}

// NewService creates a catalog service over one kind-scoped store.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	return s.store.List(ctx, false)
}

func (s *service) ListTrash(ctx context.Context) ([]*Item, error) {
	return s.store.List(ctx, true)
}

func (s *service) Create(ctx context.Context, req ItemRequest) (*Item, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	item := &Item{
		ID:     uuid.New(),
		Name:   strings.TrimSpace(req.Name),
		Price:  req.Price,
		Status: crud.StatusActive,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, id string, req ItemRequest) (*Item, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(req.Name)
	item.Price = req.Price
	if err := s.store.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	item, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.SetStatus(ctx, item.ID, crud.StatusDeleted)
}

func (s *service) Restore(ctx context.Context, id string) error {
	item, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.SetStatus(ctx, item.ID, crud.StatusActive)
}

func (s *service) Purge(ctx context.Context, id string) error {
	item, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Purge(ctx, item.ID)
}

func (s *service) SetOutOfStock(ctx context.Context, id string, outOfStock bool) (*Item, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetOutOfStock(ctx, item.ID, outOfStock); err != nil {
		return nil, err
	}
	item.OutOfStock = outOfStock
	return item, nil
}

func (s *service) get(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid item id")
	}
	return s.store.Get(ctx, uid)
}

func validate(req ItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.E(apperr.Invalid, "name is required")
	}
	if req.Price < 0 {
		return apperr.E(apperr.Invalid, "price cannot be negative")
	}
	return nil
}
