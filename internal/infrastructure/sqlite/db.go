// Package sqlite implementa el backend de almacenamiento sobre SQLite (sqlx + driver pure-Go).
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver "sqlite"
)

// OpenDB abre la base y aplica el esquema. dsn puede ser un archivo o ":memory:".
// Una sola conexión: SQLite admite un escritor a la vez y ":memory:" vive en esa conexión.
func OpenDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := migrations.ReadFile("migrations/schema.sql")
	if err != nil {
		return fmt.Errorf("leer esquema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
