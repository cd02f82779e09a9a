package postgres

import (
	"context"
	"fmt"
)

// schemaDDL crea las tablas si no existen (idempotente, sin migraciones versionadas).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id          BIGSERIAL PRIMARY KEY,
	email       TEXT NOT NULL UNIQUE,
	password    TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	role        TEXT NOT NULL DEFAULT 'user',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id             BIGSERIAL PRIMARY KEY,
	code           TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL,
	category       TEXT,
	unit           TEXT,
	min_stock      BIGINT NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
	max_stock      BIGINT NOT NULL DEFAULT 999999 CHECK (max_stock >= 0),
	current_stock  BIGINT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
	unit_price     NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
	image_url      TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS stock_movements (
	id            BIGSERIAL PRIMARY KEY,
	product_id    BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	type          TEXT NOT NULL CHECK (type IN ('in', 'out')),
	quantity      BIGINT NOT NULL CHECK (quantity > 0),
	before_stock  BIGINT NOT NULL CHECK (before_stock >= 0),
	after_stock   BIGINT NOT NULL CHECK (after_stock >= 0),
	operator_id   BIGINT NOT NULL,
	supplier      TEXT,
	department    TEXT,
	batch_no      TEXT,
	reason        TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (
		(type = 'in'  AND after_stock = before_stock + quantity) OR
		(type = 'out' AND after_stock = before_stock - quantity)
	)
);
CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_stock_movements_created ON stock_movements (created_at DESC);

CREATE TABLE IF NOT EXISTS alerts (
	id          BIGSERIAL PRIMARY KEY,
	product_id  BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	type        TEXT NOT NULL CHECK (type IN ('low_stock', 'high_stock')),
	message     TEXT NOT NULL,
	is_read     BOOLEAN NOT NULL DEFAULT false,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_alerts_unread ON alerts (is_read, created_at DESC);

CREATE TABLE IF NOT EXISTS operation_logs (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT,
	user_email  TEXT,
	action      TEXT NOT NULL,
	module      TEXT NOT NULL,
	details     TEXT,
	ip_address  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_operation_logs_created ON operation_logs (created_at DESC);
`

// ApplySchema ejecuta el DDL idempotente.
func ApplySchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
