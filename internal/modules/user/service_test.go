package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type fakeRepo struct {
	accounts map[uuid.UUID]*Account
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: map[uuid.UUID]*Account{}}
}

func (f *fakeRepo) List(_ context.Context, deleted bool) ([]*Account, error) {
	status := crud.StatusActive
	if deleted {
		status = crud.StatusDeleted
	}
	var out []*Account
	for _, a := range f.accounts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, apperr.E(apperr.NotFound, "account not found")
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, apperr.E(apperr.NotFound, "account not found")
}

func (f *fakeRepo) Count(_ context.Context) (int, error) { return len(f.accounts), nil }

func (f *fakeRepo) Create(_ context.Context, a *Account) error {
	for _, existing := range f.accounts {
		if existing.Username == a.Username {
			return apperr.E(apperr.Conflict, "username already exists")
		}
	}
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeRepo) Update(_ context.Context, a *Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := f.accounts[id]
	if !ok {
		return apperr.E(apperr.NotFound, "account not found")
	}
	a.Status = status
	return nil
}

func (f *fakeRepo) Purge(_ context.Context, id uuid.UUID) error {
	a, ok := f.accounts[id]
	if !ok || a.Status != crud.StatusDeleted {
		return apperr.E(apperr.NotFound, "account not found in trash")
	}
	delete(f.accounts, id)
	return nil
}

func TestCreateHashesPasswordAndNormalizesPermissions(t *testing.T) {
	svc := NewService(newFakeRepo())

	a, err := svc.Create(context.Background(), AccountRequest{
		Username:    "maria",
		Password:    "secret",
		Role:        RoleSeller,
		Permissions: map[string]bool{"ventas": true, "bogus": true},
	})
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret")))
	assert.True(t, a.Permissions["ventas"])
	assert.False(t, a.Permissions["productos"])
	_, known := a.Permissions["bogus"]
	assert.False(t, known, "unknown sections must be dropped")
}

func TestCreateDuplicateUsernameConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, AccountRequest{Username: "maria", Password: "x", Role: RoleSeller})
	require.NoError(t, err)

	_, err = svc.Create(ctx, AccountRequest{Username: "maria", Password: "y", Role: RoleDriver})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
	assert.Equal(t, 1, len(repo.accounts), "no duplicate record persisted")
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Create(context.Background(), AccountRequest{Username: "x", Password: "y", Role: "owner"})
	assert.True(t, apperr.Is(err, apperr.Invalid))
}

func TestFounderAccountIsImmutable(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureFounder(ctx, "admin", "changeme"))
	founder, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, founder.Founder)

	_, err = svc.Update(ctx, founder.ID.String(), AccountRequest{Role: RoleSeller})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	err = svc.SoftDelete(ctx, founder.ID.String())
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	err = svc.Purge(ctx, founder.ID.String())
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestEnsureFounderIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureFounder(ctx, "admin", "changeme"))
	require.NoError(t, svc.EnsureFounder(ctx, "admin", "changeme"))
	assert.Equal(t, 1, len(repo.accounts))
}

func TestEnsureFounderGrantsEverySection(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	require.NoError(t, svc.EnsureFounder(context.Background(), "admin", "changeme"))
	founder, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	for _, sec := range Sections {
		assert.True(t, founder.Permissions[sec], sec)
	}
}

func TestSoftDeleteThenRestoreRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, AccountRequest{Username: "pepe", Password: "x", Role: RoleDriver})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, a.ID.String()))
	active, _ := svc.List(ctx)
	trash, _ := svc.ListTrash(ctx)
	assert.Empty(t, active)
	assert.Len(t, trash, 1)

	require.NoError(t, svc.Restore(ctx, a.ID.String()))
	// restoring an already-active account stays a success no-op
	require.NoError(t, svc.Restore(ctx, a.ID.String()))
	active, _ = svc.List(ctx)
	assert.Len(t, active, 1)
}
