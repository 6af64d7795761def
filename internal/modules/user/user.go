package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles an account can hold.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleDriver = "driver"
)

// Sections are the functional areas a permission flag can grant.
var Sections = []string{
	"productos", "toppings", "jarabes", "clientes",
	"ventas", "usuarios", "pedidos", "papelera",
}

// Account is a staff login. The first account ever created is the
// founder and can never be modified or deleted.
type Account struct {
	ID           uuid.UUID       `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Role         string          `json:"role"`
	Permissions  map[string]bool `json:"permissions"`
	Founder      bool            `json:"founder"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AccountRequest is the payload for creating or updating an account.
// An empty Password on update keeps the current hash.
type AccountRequest struct {
	Username    string          `json:"username"`
	Password    string          `json:"password,omitempty"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

// Repository defines account persistence.
type Repository interface {
	List(ctx context.Context, deleted bool) ([]*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Purge(ctx context.Context, id uuid.UUID) error
}
