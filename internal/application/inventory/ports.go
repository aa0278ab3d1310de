package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error, ninguna escritura de fn queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Store es el backend de almacenamiento completo: transacciones más el reinicio al estado semilla.
type Store interface {
	TxRunner
	// Reset deja exactamente los productos semilla y el libro de ventas vacío.
	Reset(ctx context.Context) error
}

// SalesReportGenerator genera el PDF del reporte de ventas.
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, lines []dto.SaleReportLine, summary dto.SalesSummaryResponse) ([]byte, error)
}
