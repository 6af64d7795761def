package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Store defines persistence for one catalog kind.
type Store interface {
	List(ctx context.Context, deleted bool) ([]*Item, error)
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	SetOutOfStock(ctx context.Context, id uuid.UUID, outOfStock bool) error
	Purge(ctx context.Context, id uuid.UUID) error
}
