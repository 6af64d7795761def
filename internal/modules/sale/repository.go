package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines sale persistence.
type Repository interface {
	List(ctx context.Context, deleted bool) ([]*Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*Sale, error)
	Create(ctx context.Context, s *Sale) error
	Update(ctx context.Context, s *Sale) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Purge(ctx context.Context, id uuid.UUID) error

	// TotalBetween sums active sales with from <= date < to.
	TotalBetween(ctx context.Context, from, to time.Time) (float64, error)
}
