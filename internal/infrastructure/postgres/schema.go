package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Los constraints únicos sobre username y email son la segunda línea de
// defensa de la invariante de unicidad: aun si dos réplicas pasan el chequeo
// en memoria, la base rechaza la segunda escritura (23505).
const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	role          TEXT NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL,
	last_login    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_accounts_role ON accounts (role);
CREATE INDEX IF NOT EXISTS idx_accounts_created_at ON accounts (created_at DESC);
`

// EnsureSchema crea la tabla de cuentas e índices si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
