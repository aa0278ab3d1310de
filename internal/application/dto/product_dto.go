package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para registrar un producto.
type CreateProductRequest struct {
	Nome       string          `json:"nome"`
	Quantidade int64           `json:"quantidade"`
	Preco      decimal.Decimal `json:"preco"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Nome       *string          `json:"nome"`
	Quantidade *int64           `json:"quantidade"`
	Preco      *decimal.Decimal `json:"preco"`
}

// SellProductRequest entrada de venta.
type SellProductRequest struct {
	Quantidade int64 `json:"quantidade"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         int64           `json:"id"`
	Nome       string          `json:"nome"`
	Quantidade int64           `json:"quantidade"`
	Preco      decimal.Decimal `json:"preco"`
}

// ProductMessageResponse respuesta de alta/actualización con mensaje.
type ProductMessageResponse struct {
	Message string          `json:"message"`
	Produto ProductResponse `json:"produto"`
}

// SellResult resultado de una venta: producto actualizado y venta registrada.
type SellResult struct {
	Produto ProductResponse `json:"produto"`
	Venda   SaleResponse    `json:"venda"`
}

// SellMessageResponse respuesta HTTP de una venta.
type SellMessageResponse struct {
	Message string          `json:"message"`
	Produto ProductResponse `json:"produto"`
	Venda   SaleResponse    `json:"venda"`
}
