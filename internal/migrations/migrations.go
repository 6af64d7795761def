// Package migrations applies the database schema at startup. Every
// statement is idempotent so repeated boots are safe.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS catalog_items (
		id           UUID PRIMARY KEY,
		kind         TEXT NOT NULL,
		name         TEXT NOT NULL,
		price        DOUBLE PRECISION NOT NULL,
		out_of_stock BOOLEAN NOT NULL DEFAULT FALSE,
		status       TEXT NOT NULL DEFAULT 'active',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_items_kind ON catalog_items (kind, status)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		permissions   JSONB NOT NULL DEFAULT '{}',
		founder       BOOLEAN NOT NULL DEFAULT FALSE,
		status        TEXT NOT NULL DEFAULT 'active',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id              UUID PRIMARY KEY,
		date            TIMESTAMPTZ NOT NULL,
		customer_id     UUID,
		customer_name   TEXT NOT NULL DEFAULT '',
		items           JSONB NOT NULL,
		subtotal        DOUBLE PRECISION NOT NULL,
		delivery_fee    DOUBLE PRECISION NOT NULL DEFAULT 0,
		total           DOUBLE PRECISION NOT NULL,
		payment_method  TEXT NOT NULL,
		seller_id       UUID,
		seller_username TEXT NOT NULL DEFAULT '',
		driver_id       UUID,
		driver_username TEXT NOT NULL DEFAULT '',
		outcome         TEXT NOT NULL DEFAULT 'completed',
		status          TEXT NOT NULL DEFAULT 'active',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id               UUID PRIMARY KEY,
		customer_name    TEXT NOT NULL,
		customer_phone   TEXT NOT NULL,
		delivery_address TEXT NOT NULL DEFAULT '',
		items            JSONB NOT NULL,
		total            DOUBLE PRECISION NOT NULL,
		status           TEXT NOT NULL DEFAULT 'received',
		seen             BOOLEAN NOT NULL DEFAULT FALSE,
		driver_id        UUID,
		driver_username  TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Pre-migration rows may predate the soft-delete flag.
	`UPDATE catalog_items SET status = 'active' WHERE status IS NULL OR status = ''`,
	`UPDATE customers SET status = 'active' WHERE status IS NULL OR status = ''`,
	`UPDATE users SET status = 'active' WHERE status IS NULL OR status = ''`,
	`UPDATE sales SET status = 'active' WHERE status IS NULL OR status = ''`,
}

// Apply runs every schema statement in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
