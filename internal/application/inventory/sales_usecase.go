package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// SalesUseCase consultas de solo lectura sobre el libro de ventas: listado, totales y reporte PDF.
type SalesUseCase struct {
	store     TxRunner
	generator SalesReportGenerator
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(store TxRunner, generator SalesReportGenerator) *SalesUseCase {
	return &SalesUseCase{store: store, generator: generator}
}

// ListSales devuelve todas las ventas ordenadas por ID. Sin ventas devuelve una lista vacía.
func (uc *SalesUseCase) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	var sales []*entity.Sale
	err := uc.store.Run(ctx, func(_ repository.ProductRepository, saleRepo repository.SaleRepository) error {
		var err error
		sales, err = saleRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return items, nil
}

// Summary calcula cantidad de ventas, unidades vendidas y valor total.
func (uc *SalesUseCase) Summary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	sales, err := uc.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	summary := summarize(sales)
	return &summary, nil
}

// ReportPDF genera el reporte de ventas. Las ventas de productos eliminados se listan sin nombre.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - error del almacenamiento o del generador.
func (uc *SalesUseCase) ReportPDF(ctx context.Context) ([]byte, string, error) {
	var (
		sales    []*entity.Sale
		products []*entity.Product
	)
	err := uc.store.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		var err error
		if sales, err = saleRepo.List(ctx); err != nil {
			return err
		}
		products, err = productRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: cargar ventas: %w", err)
	}

	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Nome
	}
	lines := make([]dto.SaleReportLine, 0, len(sales))
	responses := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		r := *toSaleResponse(s)
		responses = append(responses, r)
		lines = append(lines, dto.SaleReportLine{Venda: r, ProdutoNome: names[s.ProdutoID]})
	}

	pdf, err := uc.generator.GenerateSalesReport(ctx, lines, summarize(responses))
	if err != nil {
		return nil, "", err
	}
	return pdf, "relatorio-vendas.pdf", nil
}

func summarize(sales []dto.SaleResponse) dto.SalesSummaryResponse {
	summary := dto.SalesSummaryResponse{ValorTotal: decimal.Zero}
	for _, s := range sales {
		summary.TotalVendas++
		summary.QuantidadeVendas += s.QuantidadeVendida
		summary.ValorTotal = summary.ValorTotal.Add(s.ValorVenda)
	}
	return summary
}
