package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/modules/sale"
)

// Repository defines order persistence.
type Repository interface {
	List(ctx context.Context) ([]*Order, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	Create(ctx context.Context, o *Order) error

	// UpdateStatus moves the order from exactly the expected status to
	// the new one. A concurrent move leaves zero rows and reports a
	// conflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next string) error

	// AssignDriver hands the order to a driver and moves it out for
	// delivery.
	AssignDriver(ctx context.Context, id uuid.UUID, driverID uuid.UUID, driverUsername string) error

	CountUnseen(ctx context.Context) (int, error)
	MarkAllSeen(ctx context.Context) error

	// Convert atomically claims the order, records the sale produced by
	// build and removes the order. Whichever caller claims first wins;
	// everyone else gets a conflict, so an order can never become two
	// sales.
	Convert(ctx context.Context, id uuid.UUID, build func(*Order) (*sale.Sale, error)) (*sale.Sale, error)
}

// IdempotencyStore suppresses duplicate public submissions. Claim
// returns false when the key was already used within the window;
// Release frees a claim whose order never made it into the database.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
