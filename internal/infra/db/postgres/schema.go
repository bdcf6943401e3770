package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id         TEXT PRIMARY KEY,
    amount     BIGINT NOT NULL,
    currency   TEXT NOT NULL,
    receipt    TEXT NOT NULL,
    status     TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id          TEXT PRIMARY KEY,
    order_id    TEXT NOT NULL,
    payment_id  TEXT NOT NULL UNIQUE,
    signature   TEXT NOT NULL,
    amount      BIGINT NOT NULL,
    currency    TEXT NOT NULL,
    status      TEXT NOT NULL,
    method      TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT '',
    contact     TEXT NOT NULL DEFAULT '',
    verified_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS payments_order_id_idx ON payments (order_id);
CREATE INDEX IF NOT EXISTS payments_verified_at_idx ON payments (verified_at DESC);

CREATE TABLE IF NOT EXISTS refund_requests (
    id         TEXT PRIMARY KEY,
    payment_id TEXT NOT NULL,
    reason     TEXT NOT NULL,
    email      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the checkout tables if they do not exist yet.
// Idempotent; ran once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
