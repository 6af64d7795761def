package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates an account repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const accountColumns = `id, username, password_hash, role, permissions, founder, status, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context, deleted bool) ([]*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE status = $1 ORDER BY created_at DESC`
	status := crud.StatusActive
	if deleted {
		status = crud.StatusDeleted
	}
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE id = $1`, id)
	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.E(apperr.NotFound, "account not found")
	}
	return a, err
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE username = $1`, username)
	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.E(apperr.NotFound, "account not found")
	}
	return a, err
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *postgresRepo) Create(ctx context.Context, a *Account) error {
	perms, err := json.Marshal(a.Permissions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, permissions, founder, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.Username, a.PasswordHash, a.Role, perms, a.Founder, a.Status)
	if isUniqueViolation(err) {
		return apperr.Errorf(apperr.Conflict, "username %q already exists", a.Username)
	}
	return err
}

func (r *postgresRepo) Update(ctx context.Context, a *Account) error {
	perms, err := json.Marshal(a.Permissions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE users
		SET username=$1, password_hash=$2, role=$3, permissions=$4, updated_at=$5
		WHERE id=$6`,
		a.Username, a.PasswordHash, a.Role, perms, time.Now(), a.ID)
	if isUniqueViolation(err) {
		return apperr.Errorf(apperr.Conflict, "username %q already exists", a.Username)
	}
	return err
}

func (r *postgresRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "account not found")
	}
	return nil
}

func (r *postgresRepo) Purge(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id=$1 AND status=$2`, id, crud.StatusDeleted)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.E(apperr.NotFound, "account not found in trash")
	}
	return nil
}

func scanAccount(scan func(...interface{}) error) (*Account, error) {
	a := &Account{}
	var perms []byte
	var status sql.NullString
	err := scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &perms,
		&a.Founder, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = crud.StatusActive
	if status.Valid && status.String != "" {
		a.Status = status.String
	}
	a.Permissions = map[string]bool{}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &a.Permissions); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
