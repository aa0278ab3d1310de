package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReport captura lo que recibe el generador.
type fakeReport struct {
	lines   []dto.SaleReportLine
	summary dto.SalesSummaryResponse
	err     error
}

func (f *fakeReport) GenerateSalesReport(_ context.Context, lines []dto.SaleReportLine, summary dto.SalesSummaryResponse) ([]byte, error) {
	f.lines, f.summary = lines, summary
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func TestListSales_EmptyIsValid(t *testing.T) {
	sales := inventory.NewSalesUseCase(memory.NewSeededStore(), nil)

	list, err := sales.ListSales(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()
	products := inventory.NewProductUseCase(store)
	sales := inventory.NewSalesUseCase(store, nil)

	_, err := products.Sell(ctx, 1, 2) // 100
	require.NoError(t, err)
	_, err = products.Sell(ctx, 2, 3) // 120
	require.NoError(t, err)

	s, err := sales.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalVendas)
	assert.Equal(t, int64(5), s.QuantidadeVendas)
	assert.True(t, dec("220").Equal(s.ValorTotal))
}

func TestSummary_Empty(t *testing.T) {
	s, err := inventory.NewSalesUseCase(memory.NewStore(), nil).Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalVendas)
	assert.True(t, s.ValorTotal.IsZero())
}

func TestReportPDF_NamesOnlyExistingProducts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()
	products := inventory.NewProductUseCase(store)
	gen := &fakeReport{}
	sales := inventory.NewSalesUseCase(store, gen)

	_, err := products.Sell(ctx, 1, 1)
	require.NoError(t, err)
	_, err = products.Sell(ctx, 2, 1)
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, 2))

	pdf, filename, err := sales.ReportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "relatorio-vendas.pdf", filename)

	require.Len(t, gen.lines, 2)
	assert.Equal(t, "Produto A", gen.lines[0].ProdutoNome)
	assert.Empty(t, gen.lines[1].ProdutoNome)
	assert.True(t, dec("90").Equal(gen.summary.ValorTotal))
}

func TestReportPDF_GeneratorError(t *testing.T) {
	boom := errors.New("maroto")
	sales := inventory.NewSalesUseCase(memory.NewSeededStore(), &fakeReport{err: boom})

	_, _, err := sales.ReportPDF(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestListSales_BackendUnavailable(t *testing.T) {
	_, err := inventory.NewSalesUseCase(downStore{}, nil).ListSales(context.Background())
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
