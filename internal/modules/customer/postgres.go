package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a customer repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const customerColumns = `id, name, phone, address, status, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context, deleted bool) ([]*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
	          WHERE (status IS NULL OR status = '' OR status <> $1)
	          ORDER BY created_at DESC`
	if deleted {
		query = `SELECT ` + customerColumns + ` FROM customers
		         WHERE status = $1 ORDER BY created_at DESC`
	}
	rows, err := r.db.QueryContext(ctx, query, crud.StatusDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.E(apperr.NotFound, "customer not found")
	}
	return c, err
}

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, address, status)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Phone, c.Address, c.Status)
	return err
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$1, phone=$2, address=$3, updated_at=$4
		WHERE id=$5`,
		c.Name, c.Phone, c.Address, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "customer not found")
	}
	return nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "customer not found")
	}
	return nil
}

func (r *postgresRepo) Purge(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM customers WHERE id=$1 AND status=$2`, id, crud.StatusDeleted)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "customer not found in trash")
	}
	return nil
}

func scanCustomer(scan func(...interface{}) error) (*Customer, error) {
	c := &Customer{}
	var status sql.NullString
	err := scan(&c.ID, &c.Name, &c.Phone, &c.Address, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = crud.StatusActive
	if status.Valid && status.String != "" {
		c.Status = status.String
	}
	return c, nil
}
