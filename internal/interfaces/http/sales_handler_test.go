package http_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func TestSalesList(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/vendas/", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	doJSON(t, app, http.MethodPut, "/api/v1/produtos/1/vender/", map[string]any{"quantidade": 2})
	doJSON(t, app, http.MethodPut, "/api/v1/produtos/2/vender/", map[string]any{"quantidade": 1})

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/vendas", nil)
	assert.Equal(t, fiber.StatusOK, status)
	list := decode[[]dto.SaleResponse](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(1), list[0].ProdutoID)
	assert.True(t, decimal.NewFromInt(100).Equal(list[0].ValorVenda))
	assert.Equal(t, int64(2), list[1].ProdutoID)
}

func TestSalesSummary(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())
	doJSON(t, app, http.MethodPut, "/api/v1/produtos/1/vender/", map[string]any{"quantidade": 2})
	doJSON(t, app, http.MethodPut, "/api/v1/produtos/2/vender/", map[string]any{"quantidade": 1})

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/vendas/resumo", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"total_vendas":2,"quantidade_vendas":3,"valor_total":140}`, string(body))
}

func TestSalesReport(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())
	doJSON(t, app, http.MethodPut, "/api/v1/produtos/1/vender/", map[string]any{"quantidade": 1})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/vendas/relatorio", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "relatorio-vendas.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
