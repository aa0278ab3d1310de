package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, nome, nome_chave, quantidade, preco`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con el ID ya asignado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO produtos (` + productColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Nome, product.NameKey, product.Quantidade, product.Preco,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1`, id)
}

// GetByNameKey obtiene un producto por nombre normalizado.
func (r *ProductRepo) GetByNameKey(ctx context.Context, key string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM produtos WHERE nome_chave = $1`, key)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1 FOR UPDATE`, id)
}

// LockForInsert toma un lock de tabla que se excluye a sí mismo: dos altas no calculan el mismo max+1.
func (r *ProductRepo) LockForInsert(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `LOCK TABLE produtos IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock produtos: %w", err)
	}
	return nil
}

// MaxID devuelve el mayor ID existente, o 0 si no hay productos.
func (r *ProductRepo) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM produtos`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("max id produtos: %w", err)
	}
	return maxID, nil
}

// List lista todos los productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM produtos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Nome, &p.NameKey, &p.Quantidade, &p.Preco); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update reescribe nombre, cantidad y precio.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE produtos SET nome = $2, nome_chave = $3, quantidade = $4, preco = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Nome, product.NameKey, product.Quantidade, product.Preco,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update produto: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete produto: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Nome, &p.NameKey, &p.Quantidade, &p.Preco)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}
