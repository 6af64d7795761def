package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

func itemRows(items ...*Item) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "price", "out_of_stock", "status", "created_at", "updated_at",
	})
	for _, item := range items {
		rows.AddRow(item.ID, item.Name, item.Price, item.OutOfStock,
			item.Status, item.CreatedAt, item.UpdatedAt)
	}
	return rows
}

func TestListActiveFiltersByKindAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db, KindProduct)
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM catalog_items\s+WHERE kind = \$1 AND \(status IS NULL OR status = '' OR status <> \$2\)`).
		WithArgs(KindProduct, crud.StatusDeleted).
		WillReturnRows(itemRows(&Item{
			ID: uuid.New(), Name: "Fresa", Price: 12.5,
			Status: crud.StatusActive, CreatedAt: now, UpdatedAt: now,
		}))

	items, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fresa", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegacyEmptyStatusScansAsActive(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db, KindTopping)
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "price", "out_of_stock", "status", "created_at", "updated_at",
	}).AddRow(uuid.New(), "Nuez", 8.0, false, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM catalog_items`).
		WithArgs(KindTopping, crud.StatusDeleted).
		WillReturnRows(rows)

	items, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, crud.StatusActive, items[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeOnlyTouchesTrash(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db, KindSyrup)
	id := uuid.New()
	mock.ExpectExec(`DELETE FROM catalog_items WHERE id=\$1 AND kind=\$2 AND status=\$3`).
		WithArgs(id, KindSyrup, crud.StatusDeleted).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.Purge(context.Background(), id)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusUnknownIDIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db, KindProduct)
	id := uuid.New()
	mock.ExpectExec(`UPDATE catalog_items SET status=\$1`).
		WithArgs(crud.StatusDeleted, sqlmock.AnyArg(), id, KindProduct).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.SetStatus(context.Background(), id, crud.StatusDeleted)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
