package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

type saleRow struct {
	ID                int64           `db:"id"`
	ProdutoID         int64           `db:"produto_id"`
	QuantidadeVendida int64           `db:"quantidade_vendida"`
	ValorVenda        decimal.Decimal `db:"valor_venda"`
	DataVenda         string          `db:"data_venda"`
}

// SaleRepo libro de ventas sobre SQLite.
type SaleRepo struct {
	q sqlx.ExtContext
}

// NewSaleRepository crea el repositorio de ventas sobre la conexión o la transacción dada.
func NewSaleRepository(q sqlx.ExtContext) *SaleRepo { return &SaleRepo{q: q} }

// Create inserta la venta y le asigna el ID generado.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO vendas(produto_id, quantidade_vendida, valor_venda, data_venda)
		VALUES (?, ?, ?, ?)
	`, s.ProdutoID, s.QuantidadeVendida, s.ValorVenda.String(), s.DataVenda.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert venda: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("id venda: %w", err)
	}
	s.ID = id
	return nil
}

// List devuelve el libro de ventas ordenado por ID.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	var rows []saleRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, produto_id, quantidade_vendida, valor_venda, data_venda FROM vendas ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	list := make([]*entity.Sale, 0, len(rows))
	for _, row := range rows {
		data, err := time.Parse(time.RFC3339Nano, row.DataVenda)
		if err != nil {
			return nil, fmt.Errorf("data_venda %d: %w", row.ID, err)
		}
		list = append(list, &entity.Sale{
			ID:                row.ID,
			ProdutoID:         row.ProdutoID,
			QuantidadeVendida: row.QuantidadeVendida,
			ValorVenda:        row.ValorVenda,
			DataVenda:         data,
		})
	}
	return list, nil
}
