package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/metrics"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/v1/produtos/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, id := range []string{"1", "2", "3"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/produtos/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/api/v1/produtos/:id", "200")))
}

func TestObserveSale(t *testing.T) {
	m := metrics.New()
	m.ObserveSale(4, decimal.RequireFromString("10.00"))
	m.ObserveSale(1, decimal.RequireFromString("2.50"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SalesTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.UnitsSold))
	assert.InDelta(t, 12.5, testutil.ToFloat64(m.SalesValue), 1e-9)
}

func TestInstrumentStore(t *testing.T) {
	m := metrics.New()
	store := metrics.InstrumentStore(memory.NewSeededStore(), m)
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(repository.ProductRepository, repository.SaleRepository) error { return nil }))
	boom := errors.New("boom")
	assert.ErrorIs(t, store.Run(ctx, func(repository.ProductRepository, repository.SaleRepository) error { return boom }), boom)
	require.NoError(t, store.Reset(ctx))

	assert.Equal(t, 3, testutil.CollectAndCount(m.StoreDuration))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveSale(1, decimal.NewFromInt(1))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(string(body), "estoque_vendas_total 1"))
}

func TestRegistry_GathersAppAndRuntimeCollectors(t *testing.T) {
	m := metrics.New()
	m.ObserveSale(2, decimal.NewFromInt(3))

	n, err := testutil.GatherAndCount(m.Registry(), "estoque_vendas_total", "estoque_vendas_unidades_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")
	assert.Contains(t, names, "estoque_vendas_valor_total")
}
