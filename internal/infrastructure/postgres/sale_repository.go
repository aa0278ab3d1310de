package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta; el ID lo genera la secuencia de la tabla.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO vendas (produto_id, quantidade_vendida, valor_venda, data_venda)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sale.ProdutoID, sale.QuantidadeVendida, sale.ValorVenda, sale.DataVenda,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert venda: %w", err)
	}
	return nil
}

// List lista todas las ventas ordenadas por ID.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, produto_id, quantidade_vendida, valor_venda, data_venda
		FROM vendas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProdutoID, &s.QuantidadeVendida, &s.ValorVenda, &s.DataVenda); err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
