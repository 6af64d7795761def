package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/sale"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates an order repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, customer_name, customer_phone, delivery_address,
	items, total, status, seen, driver_id, driver_username, created_at, updated_at`

func (r *postgresRepository) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE status <> $1
		 ORDER BY created_at DESC`,
		StatusDeliveredPendingSale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE driver_id = $1 AND status NOT IN ($2, $3)
		 ORDER BY created_at DESC`,
		driverID, StatusCancelled, StatusDeliveredPendingSale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.E(apperr.NotFound, "order not found")
	}
	return o, err
}

func (r *postgresRepository) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone,
			delivery_address, items, total, status, seen)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.CustomerName, o.CustomerPhone,
		o.DeliveryAddress, items, o.Total, o.Status, o.Seen)
	return err
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, updated_at=$2
		WHERE id=$3 AND status=$4`,
		next, time.Now(), id, expected)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return apperr.E(apperr.Conflict, "order was updated by someone else")
	}
	return nil
}

func (r *postgresRepository) AssignDriver(ctx context.Context, id uuid.UUID, driverID uuid.UUID, driverUsername string) error {
	// Guard in the statement itself: a concurrent cancellation between
	// the caller's read and this write must not be revived.
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET driver_id=$1, driver_username=$2, status=$3, updated_at=$4
		WHERE id=$5 AND status NOT IN ($6, $7)`,
		driverID, driverUsername, StatusOutForDelivery, time.Now(), id,
		StatusCancelled, StatusDeliveredPendingSale)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return apperr.E(apperr.Conflict, "order is no longer assignable")
	}
	return nil
}

func (r *postgresRepository) CountUnseen(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE seen = FALSE`).Scan(&n)
	return n, err
}

func (r *postgresRepository) MarkAllSeen(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET seen = TRUE WHERE seen = FALSE`)
	return err
}

func (r *postgresRepository) Convert(ctx context.Context, id uuid.UUID, build func(*Order) (*sale.Sale, error)) (*sale.Sale, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Claim the order. Losing the race leaves zero rows.
	row := tx.QueryRowContext(ctx, `
		UPDATE orders SET status=$1, updated_at=$2
		WHERE id=$3 AND status NOT IN ($1, $4)
		RETURNING `+orderColumns,
		StatusDeliveredPendingSale, time.Now(), id, StatusCancelled)
	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.E(apperr.Conflict, "order was already converted or cancelled")
	}
	if err != nil {
		return nil, err
	}

	v, err := build(o)
	if err != nil {
		return nil, err
	}
	if err := sale.InsertTx(ctx, tx, v); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return v, nil
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var items []byte
	err := scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress,
		&items, &o.Total, &o.Status, &o.Seen, &o.DriverID, &o.DriverUsername,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return o, nil
}
