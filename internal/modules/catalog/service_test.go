package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type fakeStore struct {
	items map[uuid.UUID]*Item
}

func newFakeStore() *fakeStore { return &fakeStore{items: map[uuid.UUID]*Item{}} }

func (f *fakeStore) List(_ context.Context, deleted bool) ([]*Item, error) {
	status := crud.StatusActive
	if deleted {
		status = crud.StatusDeleted
	}
	var out []*Item
	for _, item := range f.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id uuid.UUID) (*Item, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, apperr.E(apperr.NotFound, "item not found")
}

func (f *fakeStore) Create(_ context.Context, item *Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) Update(_ context.Context, item *Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	item, ok := f.items[id]
	if !ok {
		return apperr.E(apperr.NotFound, "item not found")
	}
	item.Status = status
	return nil
}

func (f *fakeStore) SetOutOfStock(_ context.Context, id uuid.UUID, v bool) error {
	item, ok := f.items[id]
	if !ok {
		return apperr.E(apperr.NotFound, "item not found")
	}
	item.OutOfStock = v
	return nil
}

func (f *fakeStore) Purge(_ context.Context, id uuid.UUID) error {
	item, ok := f.items[id]
	if !ok || item.Status != crud.StatusDeleted {
		return apperr.E(apperr.NotFound, "item not found in trash")
	}
	delete(f.items, id)
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, ItemRequest{Name: "  ", Price: 10})
	assert.True(t, apperr.Is(err, apperr.Invalid))

	_, err = svc.Create(ctx, ItemRequest{Name: "Fresa", Price: -1})
	assert.True(t, apperr.Is(err, apperr.Invalid))

	item, err := svc.Create(ctx, ItemRequest{Name: "Fresa", Price: 12.5})
	require.NoError(t, err)
	assert.Equal(t, crud.StatusActive, item.Status)
}

func TestSoftDeleteTrashRestorePurgeLifecycle(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, ItemRequest{Name: "Waffle", Price: 45})
	require.NoError(t, err)
	id := item.ID.String()

	require.NoError(t, svc.SoftDelete(ctx, id))
	active, _ := svc.List(ctx)
	trash, _ := svc.ListTrash(ctx)
	assert.Empty(t, active, "deleted item must leave the default listing")
	assert.Len(t, trash, 1, "deleted item must appear in the trash")

	require.NoError(t, svc.Restore(ctx, id))
	active, _ = svc.List(ctx)
	assert.Len(t, active, 1)

	// restore on an active item is a no-op success
	require.NoError(t, svc.Restore(ctx, id))

	require.NoError(t, svc.SoftDelete(ctx, id))
	require.NoError(t, svc.Purge(ctx, id))
	active, _ = svc.List(ctx)
	trash, _ = svc.ListTrash(ctx)
	assert.Empty(t, active)
	assert.Empty(t, trash)
}

func TestPurgeRequiresTrash(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	item, err := svc.Create(ctx, ItemRequest{Name: "Crepa", Price: 60})
	require.NoError(t, err)

	err = svc.Purge(ctx, item.ID.String())
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestSetOutOfStock(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	item, err := svc.Create(ctx, ItemRequest{Name: "Fresas con crema", Price: 55})
	require.NoError(t, err)

	updated, err := svc.SetOutOfStock(ctx, item.ID.String(), true)
	require.NoError(t, err)
	assert.True(t, updated.OutOfStock)

	updated, err = svc.SetOutOfStock(ctx, item.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, updated.OutOfStock)
}

func TestUnknownIDIsInvalidOrNotFound(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Update(ctx, "not-a-uuid", ItemRequest{Name: "x", Price: 1})
	assert.True(t, apperr.Is(err, apperr.Invalid))

	_, err = svc.Update(ctx, uuid.NewString(), ItemRequest{Name: "x", Price: 1})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
