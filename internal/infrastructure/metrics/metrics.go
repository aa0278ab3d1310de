// Package metrics expone la instrumentación Prometheus de la API del estoque.
//
// Cada Metrics tiene su propio registry; la API lo publica en GET /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

const namespace = "estoque"

// Metrics colectores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	SalesTotal      prometheus.Counter
	UnitsSold       prometheus.Counter
	SalesValue      prometheus.Counter
}

// New crea los colectores y los registra junto con los de runtime de Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP.",
		}, []string{"method", "path", "status"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duración de las transacciones del almacenamiento.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		}, []string{"operation", "result"}),
		SalesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vendas",
			Name:      "total",
			Help:      "Ventas registradas.",
		}),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vendas",
			Name:      "unidades_total",
			Help:      "Unidades vendidas.",
		}),
		SalesValue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vendas",
			Name:      "valor_total",
			Help:      "Valor acumulado de las ventas.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.StoreDuration,
		m.SalesTotal,
		m.UnitsSold,
		m.SalesValue,
	)
	return m
}

// Registry devuelve el registry propio (tests y colectores extra).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone las métricas en formato Prometheus/OpenMetrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Middleware registra duración y total por ruta. Usa el patrón de la ruta (/:id) para no disparar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// ObserveSale acumula una venta confirmada.
func (m *Metrics) ObserveSale(quantidade int64, valor decimal.Decimal) {
	m.SalesTotal.Inc()
	m.UnitsSold.Add(float64(quantidade))
	m.SalesValue.Add(valor.InexactFloat64())
}

// ── Store instrumentado ───────────────────────────────────────────────────────

var _ inventory.Store = (*instrumentedStore)(nil)

type instrumentedStore struct {
	next    inventory.Store
	metrics *Metrics
}

// InstrumentStore envuelve un backend midiendo la duración de cada Run y Reset.
func InstrumentStore(next inventory.Store, m *Metrics) inventory.Store {
	return &instrumentedStore{next: next, metrics: m}
}

func (s *instrumentedStore) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	start := time.Now()
	err := s.next.Run(ctx, fn)
	s.observe("run", start, err)
	return err
}

func (s *instrumentedStore) Reset(ctx context.Context) error {
	start := time.Now()
	err := s.next.Reset(ctx)
	s.observe("reset", start, err)
	return err
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.StoreDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}
