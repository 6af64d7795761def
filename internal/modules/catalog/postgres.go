package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type postgresStore struct {
	db   *sql.DB
	kind string
}

// NewPostgresStore creates a store scoped to one catalog kind.
func NewPostgresStore(db *sql.DB, kind string) Store {
	return &postgresStore{db: db, kind: kind}
}

const itemColumns = `id, name, price, out_of_stock, status, created_at, updated_at`

func (s *postgresStore) List(ctx context.Context, deleted bool) ([]*Item, error) {
	// Legacy rows without a flag count as active.
	query := `SELECT ` + itemColumns + ` FROM catalog_items
	          WHERE kind = $1 AND (status IS NULL OR status = '' OR status <> $2)
	          ORDER BY created_at DESC`
	other := crud.StatusDeleted
	if deleted {
		query = `SELECT ` + itemColumns + ` FROM catalog_items
		         WHERE kind = $1 AND status = $2
		         ORDER BY created_at DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, s.kind, other)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *postgresStore) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM catalog_items WHERE id = $1 AND kind = $2`,
		id, s.kind)
	item, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.E(apperr.NotFound, "item not found")
	}
	return item, err
}

func (s *postgresStore) Create(ctx context.Context, item *Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_items (id, kind, name, price, out_of_stock, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		item.ID, s.kind, item.Name, item.Price, item.OutOfStock, item.Status)
	return err
}

func (s *postgresStore) Update(ctx context.Context, item *Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE catalog_items SET name=$1, price=$2, updated_at=$3
		WHERE id=$4 AND kind=$5`,
		item.Name, item.Price, time.Now(), item.ID, s.kind)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "item not found")
	}
	return nil
}

func (s *postgresStore) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE catalog_items SET status=$1, updated_at=$2
		WHERE id=$3 AND kind=$4`,
		status, time.Now(), id, s.kind)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "item not found")
	}
	return nil
}

func (s *postgresStore) SetOutOfStock(ctx context.Context, id uuid.UUID, outOfStock bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE catalog_items SET out_of_stock=$1, updated_at=$2
		WHERE id=$3 AND kind=$4`,
		outOfStock, time.Now(), id, s.kind)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "item not found")
	}
	return nil
}

func (s *postgresStore) Purge(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM catalog_items WHERE id=$1 AND kind=$2 AND status=$3`,
		id, s.kind, crud.StatusDeleted)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "item not found in trash")
	}
	return nil
}

func scanItem(scan func(...interface{}) error) (*Item, error) {
	item := &Item{}
	var status sql.NullString
	err := scan(&item.ID, &item.Name, &item.Price, &item.OutOfStock,
		&status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Status = crud.StatusActive
	if status.Valid && status.String != "" {
		item.Status = status.String
	}
	return item, nil
}
