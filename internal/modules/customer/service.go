package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Service defines customer management business logic.
type Service interface {
	crud.Service[*Customer, CustomerRequest]
}

type service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx, false)
}

func (s *service) ListTrash(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx, true)
}

func (s *service) Create(ctx context.Context, req CustomerRequest) (*Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	c := &Customer{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Status:  crud.StatusActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id string, req CustomerRequest) (*Customer, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Address = strings.TrimSpace(req.Address)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, c.ID, crud.StatusDeleted)
}

func (s *service) Restore(ctx context.Context, id string) error {
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, c.ID, crud.StatusActive)
}

func (s *service) Purge(ctx context.Context, id string) error {
	c, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Purge(ctx, c.ID)
}

func (s *service) get(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid customer id")
	}
	return s.repo.Get(ctx, uid)
}

func validate(req CustomerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.E(apperr.Invalid, "name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return apperr.E(apperr.Invalid, "phone is required")
	}
	return nil
}
