package sale

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a sale repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const saleColumns = `id, date, customer_id, customer_name, items, subtotal,
	delivery_fee, total, payment_method, seller_id, seller_username,
	driver_id, driver_username, outcome, status, created_at, updated_at`

func (r *postgresRepository) List(ctx context.Context, deleted bool) ([]*Sale, error) {
	// Legacy rows without a flag count as active.
	query := `SELECT ` + saleColumns + ` FROM sales
	          WHERE status IS NULL OR status = '' OR status <> $1
	          ORDER BY date DESC`
	status := crud.StatusDeleted
	if deleted {
		query = `SELECT ` + saleColumns + ` FROM sales
		         WHERE status = $1
		         ORDER BY date DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*Sale
	for rows.Next() {
		v, err := scanSale(rows.Scan)
		if err != nil {
			return nil, err
		}
		sales = append(sales, v)
	}
	return sales, rows.Err()
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (*Sale, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	v, err := scanSale(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.E(apperr.NotFound, "sale not found")
	}
	return v, err
}

func (r *postgresRepository) Create(ctx context.Context, s *Sale) error {
	return insertSale(ctx, r.db, s)
}

// InsertTx records a sale inside an existing transaction. The order
// conversion flow uses it so the sale insert and the order removal
// commit or roll back together.
func InsertTx(ctx context.Context, tx *sql.Tx, s *Sale) error {
	return insertSale(ctx, tx, s)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertSale(ctx context.Context, db execer, s *Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO sales (id, date, customer_id, customer_name, items,
			subtotal, delivery_fee, total, payment_method, seller_id,
			seller_username, driver_id, driver_username, outcome, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		s.ID, s.Date, s.CustomerID, s.CustomerName, items,
		s.Subtotal, s.DeliveryFee, s.Total, s.PaymentMethod, s.SellerID,
		s.SellerUsername, s.DriverID, s.DriverUsername, s.Outcome, s.Status)
	return err
}

func (r *postgresRepository) Update(ctx context.Context, s *Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE sales SET customer_id=$1, customer_name=$2, items=$3,
			subtotal=$4, delivery_fee=$5, total=$6, payment_method=$7,
			outcome=$8, updated_at=$9
		WHERE id=$10`,
		s.CustomerID, s.CustomerName, items,
		s.Subtotal, s.DeliveryFee, s.Total, s.PaymentMethod,
		s.Outcome, time.Now(), s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "sale not found")
	}
	return nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sales SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "sale not found")
	}
	return nil
}

func (r *postgresRepository) Purge(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM sales WHERE id=$1 AND status=$2`,
		id, crud.StatusDeleted)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "sale not found in trash")
	}
	return nil
}

func (r *postgresRepository) TotalBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM sales
		WHERE date >= $1 AND date < $2
		  AND (status IS NULL OR status = '' OR status <> $3)`,
		from, to, crud.StatusDeleted).Scan(&total)
	return total, err
}

func scanSale(scan func(...interface{}) error) (*Sale, error) {
	v := &Sale{}
	var (
		items  []byte
		status sql.NullString
	)
	err := scan(&v.ID, &v.Date, &v.CustomerID, &v.CustomerName, &items,
		&v.Subtotal, &v.DeliveryFee, &v.Total, &v.PaymentMethod,
		&v.SellerID, &v.SellerUsername, &v.DriverID, &v.DriverUsername,
		&v.Outcome, &status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &v.Items); err != nil {
		return nil, err
	}
	v.Status = crud.StatusActive
	if status.Valid && status.String != "" {
		v.Status = status.String
	}
	return v, nil
}
