package dto

import "github.com/shopspring/decimal"

func init() {
	// preco y valor_venda viajan como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta sin entidad (delete, reset).
type MessageResponse struct {
	Message string `json:"message"`
}
