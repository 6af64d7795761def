package order

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
)

func orderRow(id uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "customer_name", "customer_phone", "delivery_address",
		"items", "total", "status", "seen", "driver_id", "driver_username",
		"created_at", "updated_at",
	}).AddRow(id, "Ana", "555-0101", "Calle 1 #23",
		[]byte(`[{"product_name":"Fresas con crema","quantity":1,"total":60}]`),
		60.0, status, false, nil, "", now, now)
}

// Assignment races a concurrent cancellation: the staff member read the
// order before it was cancelled, but the guarded UPDATE must not flip
// the terminal state back to out_for_delivery.
func TestAssignDriverDoesNotReviveCancelledOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	orderID := uuid.New()
	driverID := uuid.New()

	mock.ExpectExec(`UPDATE orders SET driver_id=\$1, driver_username=\$2, status=\$3, updated_at=\$4\s+WHERE id=\$5 AND status NOT IN \(\$6, \$7\)`).
		WithArgs(driverID, "pedro", StatusOutForDelivery, sqlmock.AnyArg(),
			orderID, StatusCancelled, StatusDeliveredPendingSale).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs(orderID).
		WillReturnRows(orderRow(orderID, StatusCancelled))

	err = repo.AssignDriver(context.Background(), orderID, driverID, "pedro")
	assert.True(t, apperr.Is(err, apperr.Conflict))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignDriverUnknownOrderIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	orderID := uuid.New()
	driverID := uuid.New()

	mock.ExpectExec(`UPDATE orders SET driver_id=`).
		WithArgs(driverID, "pedro", StatusOutForDelivery, sqlmock.AnyArg(),
			orderID, StatusCancelled, StatusDeliveredPendingSale).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs(orderID).
		WillReturnError(sql.ErrNoRows)

	err = repo.AssignDriver(context.Background(), orderID, driverID, "pedro")
	assert.True(t, apperr.Is(err, apperr.NotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignDriverLiveOrderSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	orderID := uuid.New()
	driverID := uuid.New()

	mock.ExpectExec(`UPDATE orders SET driver_id=`).
		WithArgs(driverID, "pedro", StatusOutForDelivery, sqlmock.AnyArg(),
			orderID, StatusCancelled, StatusDeliveredPendingSale).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AssignDriver(context.Background(), orderID, driverID, "pedro")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
