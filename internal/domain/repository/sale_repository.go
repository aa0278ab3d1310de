package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para el libro de ventas.
type SaleRepository interface {
	// Create persiste la venta y completa sale.ID con el identificador asignado por el almacenamiento.
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context) ([]*entity.Sale, error)
}
