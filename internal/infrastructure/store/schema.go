package store

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id           BIGSERIAL PRIMARY KEY,
		customer_id  TEXT NOT NULL,
		status       TEXT NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		sku        TEXT NOT NULL,
		quantity   INTEGER NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id            BIGSERIAL PRIMARY KEY,
		sku           TEXT NOT NULL,
		warehouse_id  TEXT NOT NULL,
		available_qty INTEGER,
		reserved_qty  INTEGER NOT NULL DEFAULT 0,
		incoming_qty  INTEGER NOT NULL DEFAULT 0,
		threshold     INTEGER NOT NULL DEFAULT 0,
		updated_at    TIMESTAMPTZ NOT NULL,
		UNIQUE (sku, warehouse_id)
	)`,
	`CREATE TABLE IF NOT EXISTS shipments (
		id                 BIGSERIAL PRIMARY KEY,
		order_id           BIGINT NOT NULL,
		tracking_number    TEXT NOT NULL UNIQUE,
		origin             TEXT NOT NULL,
		destination        TEXT NOT NULL,
		current_location   TEXT,
		status             TEXT NOT NULL,
		estimated_delivery TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables each service needs. Idempotent; safe to run
// at every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
