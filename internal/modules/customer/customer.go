package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Customer is a delivery/loyalty record; sales may reference one but
// never depend on it (snapshots carry their own copies).
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerRequest is the payload for creating or updating a customer.
type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Repository defines customer persistence.
type Repository interface {
	List(ctx context.Context, deleted bool) ([]*Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Purge(ctx context.Context, id uuid.UUID) error
}
