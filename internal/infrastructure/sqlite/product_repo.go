package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productRow struct {
	ID         int64           `db:"id"`
	Nome       string          `db:"nome"`
	NomeChave  string          `db:"nome_chave"`
	Quantidade int64           `db:"quantidade"`
	Preco      decimal.Decimal `db:"preco"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{ID: r.ID, Nome: r.Nome, NameKey: r.NomeChave, Quantidade: r.Quantidade, Preco: r.Preco}
}

// ProductRepo productos sobre SQLite. Acepta *sqlx.DB o *sqlx.Tx.
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository crea el repositorio sobre la conexión o la transacción dada.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo { return &ProductRepo{q: q} }

// Create inserta el producto con el ID ya asignado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO produtos(id, nome, nome_chave, quantidade, preco)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Nome, p.NameKey, p.Quantidade, p.Preco.String())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT id, nome, nome_chave, quantidade, preco FROM produtos WHERE id = ?`, id)
}

// GetByNameKey busca por nombre normalizado. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByNameKey(ctx context.Context, key string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT id, nome, nome_chave, quantidade, preco FROM produtos WHERE nome_chave = ?`, key)
}

// GetForUpdate: con una sola conexión la transacción ya es el único escritor.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// LockForInsert no hace nada: la única conexión ya serializa las escrituras.
func (r *ProductRepo) LockForInsert(context.Context) error { return nil }

// MaxID devuelve el mayor ID existente, 0 si no hay productos.
func (r *ProductRepo) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	if err := sqlx.GetContext(ctx, r.q, &maxID, `SELECT COALESCE(MAX(id), 0) FROM produtos`); err != nil {
		return 0, fmt.Errorf("max id produtos: %w", err)
	}
	return maxID, nil
}

// List devuelve todos los productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, nome, nome_chave, quantidade, preco FROM produtos ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// Update persiste nombre, cantidad y precio del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE produtos SET nome = ?, nome_chave = ?, quantidade = ?, preco = ? WHERE id = ?
	`, p.Nome, p.NameKey, p.Quantidade, p.Preco.String(), p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update produto: %w", err)
	}
	return nil
}

// Delete borra el producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM produtos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return row.toEntity(), nil
}

func isUniqueViolation(err error) bool {
	var se *sqlitedriver.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
