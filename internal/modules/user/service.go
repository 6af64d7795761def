package user

import (
	"context"

	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Service defines account management business logic. It satisfies the
// generic crud router contract plus the startup seeding hook.
type Service interface {
	crud.Service[*Account, AccountRequest]

	// EnsureFounder creates the immutable founder admin when the
	// account table is empty. Subsequent boots are no-ops.
	EnsureFounder(ctx context.Context, username, password string) error
}
