package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *inventory.ProductUseCase
	SalesUC   *inventory.SalesUseCase
	// Opcionales
	Observer       SaleObserver
	MetricsHandler http.Handler
}

// Router registra las rutas de la API. Sin StrictRouting, cada ruta acepta también la barra final.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	produtos := api.Group("/produtos")
	productHandler := NewProductHandler(deps.ProductUC, deps.Observer)
	produtos.Post("/", productHandler.Create)
	produtos.Get("/", productHandler.List)
	produtos.Delete("/", productHandler.Reset)
	produtos.Get("/:id", productHandler.GetByID)
	produtos.Patch("/:id", productHandler.Update)
	produtos.Delete("/:id", productHandler.Delete)
	produtos.Put("/:id/vender", productHandler.Sell)

	vendas := api.Group("/vendas")
	salesHandler := NewSalesHandler(deps.SalesUC)
	vendas.Get("/", salesHandler.List)
	vendas.Get("/resumo", salesHandler.Summary)
	vendas.Get("/relatorio", salesHandler.Report)

	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}
}

// AppConfig opciones de la aplicación fiber de la API.
type AppConfig struct {
	Name    string
	Log     *logger.Logger
	Metrics fiber.Handler // middleware de métricas; nil = sin métricas
}

// NewApp construye la app fiber con el stack de middlewares común (recover, request id, logging) y /health.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.Log != nil {
		app.Use(cfg.Log.FiberMiddleware())
	}
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}
