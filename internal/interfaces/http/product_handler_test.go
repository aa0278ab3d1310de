package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la API completa sobre un store en memoria.
func buildTestApp(t *testing.T, store inventory.Store) (*fiber.App, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	app := apphttp.NewApp(apphttp.AppConfig{Name: "estoque-test", Metrics: m.Middleware()}, apphttp.RouterDeps{
		ProductUC:      inventory.NewProductUseCase(store),
		SalesUC:        inventory.NewSalesUseCase(store, infrapdf.NewMarotoPDFGenerator()),
		Observer:       m,
		MetricsHandler: m.Handler(),
	})
	return app, m
}

// doJSON lanza una petición con cuerpo JSON opcional y devuelve status y cuerpo.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

type errorBody = dto.ErrorResponse

// ──────────────────────────────────────────────────────────────────────────────
// Produtos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ReturnsCreatedProduct(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/produtos/", map[string]any{
		"nome": "Widget", "quantidade": 10, "preco": 2.50,
	})
	assert.Equal(t, fiber.StatusCreated, status)

	out := decode[map[string]any](t, body)
	assert.Equal(t, "Produto cadastrado com sucesso!", out["message"])
	produto := out["produto"].(map[string]any)
	assert.Equal(t, float64(1), produto["id"])
	assert.Equal(t, "Widget", produto["nome"])
	assert.Equal(t, float64(10), produto["quantidade"])
	assert.Equal(t, 2.5, produto["preco"]) // número JSON, no string
}

func TestCreate_WithoutTrailingSlash(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/produtos", map[string]any{"nome": "Widget", "quantidade": 1, "preco": 1})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestCreate_DuplicateIsBadRequest(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/produtos/", map[string]any{"nome": "produto a", "quantidade": 1, "preco": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	e := decode[errorBody](t, body)
	assert.Equal(t, "CONFLICT", e.Code)
	assert.Equal(t, "Produto já existe.", e.Message)
}

func TestCreate_Validation(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/produtos/", map[string]any{"nome": "X", "quantidade": -1, "preco": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[errorBody](t, body).Code)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/produtos/", map[string]any{"quantidade": 1, "preco": 1})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, decode[errorBody](t, body).Message, "nome")
}

func TestCreate_InvalidBody(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/produtos/", bytes.NewBufferString("{nome"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestList(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/produtos/", nil)
	assert.Equal(t, fiber.StatusOK, status)
	list := decode[[]dto.ProductResponse](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "Produto A", list[0].Nome)
	assert.True(t, decimal.NewFromInt(50).Equal(list[0].Preco))
}

func TestList_EmptyIsNotFound(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/produtos", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Nenhum produto encontrado.", decode[errorBody](t, body).Message)
}

func TestGetByID(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/produtos/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Produto B", decode[dto.ProductResponse](t, body).Nome)

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/produtos/99", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Produto não encontrado.", decode[errorBody](t, body).Message)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/produtos/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSell(t *testing.T) {
	app, m := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodPut, "/api/v1/produtos/1/vender/", map[string]any{"quantidade": 4})
	assert.Equal(t, fiber.StatusOK, status)
	out := decode[dto.SellMessageResponse](t, body)
	assert.Equal(t, "Venda realizada com sucesso!", out.Message)
	assert.Equal(t, int64(6), out.Produto.Quantidade)
	assert.Equal(t, int64(4), out.Venda.QuantidadeVendida)
	assert.True(t, decimal.NewFromInt(200).Equal(out.Venda.ValorVenda))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SalesTotal))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.UnitsSold))
}

func TestSell_Errors(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodPut, "/api/v1/produtos/2/vender", map[string]any{"quantidade": 6})
	assert.Equal(t, fiber.StatusBadRequest, status)
	e := decode[errorBody](t, body)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, "Quantidade insuficiente no estoque.", e.Message)

	status, _ = doJSON(t, app, http.MethodPut, "/api/v1/produtos/99/vender/", map[string]any{"quantidade": 1})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = doJSON(t, app, http.MethodPut, "/api/v1/produtos/1/vender/", map[string]any{"quantidade": 0})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[errorBody](t, body).Code)
}

func TestUpdate_Partial(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodPatch, "/api/v1/produtos/1", map[string]any{"preco": "3.00"})
	assert.Equal(t, fiber.StatusOK, status)
	out := decode[dto.ProductMessageResponse](t, body)
	assert.Equal(t, "Produto atualizado com sucesso!", out.Message)
	assert.Equal(t, "Produto A", out.Produto.Nome)
	assert.Equal(t, int64(10), out.Produto.Quantidade)
	assert.True(t, decimal.NewFromInt(3).Equal(out.Produto.Preco))

	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/produtos/1", map[string]any{"nome": "PRODUTO B"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/produtos/77", map[string]any{"quantidade": 1})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDelete(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())

	status, body := doJSON(t, app, http.MethodDelete, "/api/v1/produtos/1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Produto removido com sucesso!", decode[dto.MessageResponse](t, body).Message)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/produtos/1", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReset(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())
	doJSON(t, app, http.MethodPost, "/api/v1/produtos/", map[string]any{"nome": "Widget", "quantidade": 10, "preco": 2.5})

	status, body := doJSON(t, app, http.MethodDelete, "/api/v1/produtos/", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Estoque resetado com sucesso!", decode[dto.MessageResponse](t, body).Message)

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/produtos/", nil)
	list := decode[[]dto.ProductResponse](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "Produto B", list[1].Nome)
}

// downStore simula un backend caído.
type downStore struct{}

func (downStore) Run(context.Context, func(repository.ProductRepository, repository.SaleRepository) error) error {
	return domain.ErrBackendUnavailable
}
func (downStore) Reset(context.Context) error { return domain.ErrBackendUnavailable }

func TestBackendUnavailable(t *testing.T) {
	app, _ := buildTestApp(t, downStore{})

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/produtos/", nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "BACKEND_UNAVAILABLE", decode[errorBody](t, body).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infra: health, métricas, rutas desconocidas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestUnknownRoute(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewStore())

	status, body := doJSON(t, app, http.MethodGet, "/api/v1/nada", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, body).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := buildTestApp(t, memory.NewSeededStore())
	doJSON(t, app, http.MethodGet, "/api/v1/produtos/1", nil)

	status, body := doJSON(t, app, http.MethodGet, "/metrics", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `estoque_http_requests_total{method="GET",path="/api/v1/produtos/:id",status="200"} 1`)
}
