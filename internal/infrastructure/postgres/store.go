package postgres

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ inventory.Store = (*Store)(nil)

// Store backend PostgreSQL: ejecuta callbacks dentro de una transacción con repos atados a la tx.
type Store struct {
	pool           *pgxpool.Pool
	seedScriptPath string
}

// NewStore construye el backend. seedScriptPath vacío usa migrations/seed.sql embebido.
func NewStore(pool *pgxpool.Pool, seedScriptPath string) *Store {
	return &Store{pool: pool, seedScriptPath: seedScriptPath}
}

// EnsureSchema crea las tablas si no existen.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema, err := migrations.ReadFile("migrations/schema.sql")
	if err != nil {
		return fmt.Errorf("leer esquema: %w", err)
	}
	if _, err := s.pool.Exec(ctx, string(schema)); err != nil {
		return unavailable("aplicar esquema", err)
	}
	return nil
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Reset vuelve a ejecutar el script semilla completo dentro de una transacción.
func (s *Store) Reset(ctx context.Context) error {
	script, err := s.seedScript()
	if err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Sin argumentos pgx usa el protocolo simple, que admite varias sentencias.
	if _, err := tx.Exec(ctx, script); err != nil {
		return fmt.Errorf("ejecutar script semilla: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) seedScript() (string, error) {
	if s.seedScriptPath == "" {
		b, err := migrations.ReadFile("migrations/seed.sql")
		if err != nil {
			return "", fmt.Errorf("leer script semilla: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(s.seedScriptPath)
	if err != nil {
		return "", fmt.Errorf("leer script semilla %s: %w", s.seedScriptPath, err)
	}
	return string(b), nil
}
