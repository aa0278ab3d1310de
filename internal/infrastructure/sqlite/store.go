package sqlite

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ inventory.Store = (*Store)(nil)

// Store backend SQLite: cada Run es una transacción sqlx.
type Store struct {
	db             *sqlx.DB
	seedScriptPath string
}

// NewStore construye el backend. seedScriptPath vacío usa migrations/seed.sql embebido.
func NewStore(db *sqlx.DB, seedScriptPath string) *Store {
	return &Store{db: db, seedScriptPath: seedScriptPath}
}

// Run ejecuta fn dentro de una transacción; Commit si fn no devuelve error, Rollback en otro caso.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewProductRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Reset ejecuta el script semilla completo en una transacción.
func (s *Store) Reset(ctx context.Context) error {
	script, err := s.seedScript()
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("ejecutar script semilla: %w", err)
	}
	if err := tx.Commit(); err != nil {
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
