package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID                int64           `json:"id"`
	ProdutoID         int64           `json:"produto_id"`
	QuantidadeVendida int64           `json:"quantidade_vendida"`
	ValorVenda        decimal.Decimal `json:"valor_venda"`
	DataVenda         time.Time       `json:"data_venda"`
}

// SalesSummaryResponse totales del libro de ventas.
type SalesSummaryResponse struct {
	TotalVendas      int             `json:"total_vendas"`
	QuantidadeVendas int64           `json:"quantidade_vendas"`
	ValorTotal       decimal.Decimal `json:"valor_total"`
}

// SaleReportLine línea del reporte PDF (venta + nombre del producto si aún existe).
type SaleReportLine struct {
	Venda       SaleResponse
	ProdutoNome string
}
