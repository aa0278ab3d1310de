package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registra una venta. Inmutable después de creada; ProdutoID es informativo (sin cascada).
type Sale struct {
	ID                int64
	ProdutoID         int64
	QuantidadeVendida int64
	ValorVenda        decimal.Decimal // cantidad × precio unitario al momento de la venta
	DataVenda         time.Time
}
