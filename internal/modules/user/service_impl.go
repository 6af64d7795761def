package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx, false)
}

func (s *service) ListTrash(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx, true)
}

func (s *service) Create(ctx context.Context, req AccountRequest) (*Account, error) {
	if err := validateRequest(req, true); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperr.Errorf(apperr.Conflict, "username %q already exists", req.Username)
	} else if !apperr.Is(err, apperr.NotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := &Account{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Role:         req.Role,
		Permissions:  normalizePermissions(req.Permissions),
		Status:       crud.StatusActive,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id string, req AccountRequest) (*Account, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Founder {
		return nil, apperr.E(apperr.Forbidden, "the founder account cannot be modified")
	}
	if err := validateRequest(req, false); err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != a.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperr.Errorf(apperr.Conflict, "username %q already exists", req.Username)
		} else if !apperr.Is(err, apperr.NotFound) {
			return nil, err
		}
		a.Username = strings.TrimSpace(req.Username)
	}
	if req.Role != "" {
		a.Role = req.Role
	}
	if req.Permissions != nil {
		a.Permissions = normalizePermissions(req.Permissions)
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if a.Founder {
		return apperr.E(apperr.Forbidden, "the founder account cannot be deleted")
	}
	return s.repo.SetStatus(ctx, a.ID, crud.StatusDeleted)
}

func (s *service) Restore(ctx context.Context, id string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, a.ID, crud.StatusActive)
}

func (s *service) Purge(ctx context.Context, id string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if a.Founder {
		return apperr.E(apperr.Forbidden, "the founder account cannot be deleted")
	}
	return s.repo.Purge(ctx, a.ID)
}

func (s *service) EnsureFounder(ctx context.Context, username, password string) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if password == "" {
		return errors.New("ADMIN_PASSWORD is required to seed the founder account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	perms := make(map[string]bool, len(Sections))
	for _, sec := range Sections {
		perms[sec] = true
	}
	return s.repo.Create(ctx, &Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		Permissions:  perms,
		Founder:      true,
		Status:       crud.StatusActive,
	})
}

func (s *service) get(ctx context.Context, id string) (*Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid account id")
	}
	return s.repo.GetByID(ctx, uid)
}

func validateRequest(req AccountRequest, creating bool) error {
	if creating {
		if strings.TrimSpace(req.Username) == "" {
			return apperr.E(apperr.Invalid, "username is required")
		}
		if req.Password == "" {
			return apperr.E(apperr.Invalid, "password is required")
		}
	}
	role := req.Role
	if role == "" && !creating {
		return nil
	}
	switch role {
	case RoleAdmin, RoleSeller, RoleDriver:
		return nil
	default:
		return apperr.Errorf(apperr.Invalid, "unknown role %q", role)
	}
}

func normalizePermissions(perms map[string]bool) map[string]bool {
	out := make(map[string]bool, len(Sections))
	for _, sec := range Sections {
		out[sec] = perms[sec]
	}
	return out
}
