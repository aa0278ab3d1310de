// Package web es el frontend HTML del estoque: renderiza páginas y reenvía los formularios a la API.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/infrastructure/apiclient"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layout = "layout"

// API lo que el frontend necesita de la API REST (implementado por apiclient.Client).
type API interface {
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error)
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) error
	UpdateProduct(ctx context.Context, id int64, in dto.UpdateProductRequest) error
	SellProduct(ctx context.Context, id int64, quantidade int64) error
	DeleteProduct(ctx context.Context, id int64) error
	ResetProducts(ctx context.Context) error
	ListSales(ctx context.Context) ([]dto.SaleResponse, error)
	SalesReport(ctx context.Context) ([]byte, error)
}

var _ API = (*apiclient.Client)(nil)

// Handler páginas del frontend.
type Handler struct {
	api API
	log *logger.Logger
}

// NewHandler construye el handler.
func NewHandler(api API, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{api: api, log: log}
}

// NewApp construye la app fiber del frontend con las vistas embebidas.
func NewApp(name string, api API, log *logger.Logger) (*fiber.App, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", money)

	app := fiber.New(fiber.Config{
		AppName: name,
		Views:   engine,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if log != nil {
		app.Use(log.FiberMiddleware())
	}

	NewHandler(api, log).Register(app)
	return app, nil
}

// Register monta las rutas del frontend.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/cadastro", h.CadastroForm)
	app.Post("/inserir", h.Inserir)
	app.Get("/estoque", h.Estoque)
	app.Get("/atualizar/:id", h.AtualizarForm)
	app.Post("/atualizar/:id", h.Atualizar)
	app.Get("/vender/:id", h.VenderForm)
	app.Post("/vender/:id", h.Vender)
	app.Get("/vendas", h.Vendas)
	app.Get("/vendas/relatorio", h.Relatorio)
	app.Post("/excluir/:id", h.Excluir)
	app.Get("/reset-database", h.Reset)
}

// Index GET /
func (h *Handler) Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{}, layout)
}

// CadastroForm GET /cadastro: formulario de alta.
func (h *Handler) CadastroForm(c *fiber.Ctx) error {
	return c.Render("cadastro", fiber.Map{"Title": "Cadastro"}, layout)
}

// Inserir envía el formulario de alta a la API y redirige al estoque.
func (h *Handler) Inserir(c *fiber.Ctx) error {
	in, ok := parseProductForm(c)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao inserir produto")
	}
	if err := h.api.CreateProduct(c.Context(), dto.CreateProductRequest{Nome: in.nome, Quantidade: in.quantidade, Preco: in.preco}); err != nil {
		h.log.Warn().Err(err).Msg("inserir produto")
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao inserir produto")
	}
	return c.Redirect("/estoque", fiber.StatusFound)
}

// Estoque lista los productos. Cualquier respuesta inesperada de la API se muestra como estoque vacío.
func (h *Handler) Estoque(c *fiber.Ctx) error {
	produtos, err := h.api.ListProducts(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("listar produtos")
		produtos = []dto.ProductResponse{}
	}
	return c.Render("estoque", fiber.Map{"Title": "Estoque", "Produtos": produtos}, layout)
}

// AtualizarForm GET /atualizar/:id: formulario de edición con los datos actuales.
func (h *Handler) AtualizarForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	produto, err := h.api.GetProduct(c.Context(), int64(id))
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produto não encontrado"})
	}
	if err != nil {
		return err
	}
	return c.Render("atualizar", fiber.Map{"Title": "Atualizar", "Produto": produto}, layout)
}

// Atualizar envía el formulario completo como PATCH.
func (h *Handler) Atualizar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	in, ok := parseProductForm(c)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao atualizar produto")
	}
	req := dto.UpdateProductRequest{Nome: &in.nome, Quantidade: &in.quantidade, Preco: &in.preco}
	if err := h.api.UpdateProduct(c.Context(), int64(id), req); err != nil {
		h.log.Warn().Err(err).Int("id", id).Msg("atualizar produto")
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao atualizar produto")
	}
	return c.Redirect("/estoque", fiber.StatusFound)
}

// VenderForm GET /vender/:id: formulario de venta.
func (h *Handler) VenderForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	produto, err := h.api.GetProduct(c.Context(), int64(id))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.log.Warn().Err(err).Int("id", id).Msg("consultar produto")
		}
		return c.Status(fiber.StatusNotFound).SendString("Produto não encontrado")
	}
	return c.Render("vender", fiber.Map{"Title": "Vender", "Produto": produto}, layout)
}

// Vender envía la venta a la API y redirige al estoque.
func (h *Handler) Vender(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	quantidade, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("quantidade")), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao vender produto")
	}
	if err := h.api.SellProduct(c.Context(), int64(id), quantidade); err != nil {
		h.log.Warn().Err(err).Int("id", id).Msg("vender produto")
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao vender produto")
	}
	return c.Redirect("/estoque", fiber.StatusFound)
}

// Vendas lista las ventas con el total de valor_venda.
func (h *Handler) Vendas(c *fiber.Ctx) error {
	vendas, err := h.api.ListSales(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("listar vendas")
		vendas = []dto.SaleResponse{}
	}
	total := decimal.Zero
	for _, v := range vendas {
		total = total.Add(v.ValorVenda)
	}
	return c.Render("vendas", fiber.Map{"Title": "Vendas", "Vendas": vendas, "TotalVendas": total}, layout)
}

// Relatorio reenvía el PDF de ventas generado por la API.
func (h *Handler) Relatorio(c *fiber.Ctx) error {
	pdf, err := h.api.SalesReport(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("relatório de vendas")
		return c.Status(fiber.StatusInternalServerError).SendString("Erro ao gerar relatório")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-vendas.pdf"`)
	return c.Send(pdf)
}

// Excluir borra el producto; ante error responde con el status de la API.
func (h *Handler) Excluir(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	if err := h.api.DeleteProduct(c.Context(), int64(id)); err != nil {
		h.log.Warn().Err(err).Int("id", id).Msg("excluir produto")
		return c.Status(apiStatus(err)).JSON(fiber.Map{"error": "Erro ao excluir produto"})
	}
	return c.Redirect("/estoque", fiber.StatusFound)
}

// Reset vuelve el estoque a los productos semilla y muestra la confirmación.
func (h *Handler) Reset(c *fiber.Ctx) error {
	if err := h.api.ResetProducts(c.Context()); err != nil {
		h.log.Warn().Err(err).Msg("resetar banco de dados")
		return c.Status(apiStatus(err)).JSON(fiber.Map{"error": "Erro ao resetar o banco de dados"})
	}
	return c.Render("confirmacao", fiber.Map{"Title": "Confirmação"}, layout)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type productForm struct {
	nome       string
	quantidade int64
	preco      decimal.Decimal
}

func parseProductForm(c *fiber.Ctx) (productForm, bool) {
	q, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("quantidade")), 10, 64)
	if err != nil {
		return productForm{}, false
	}
	p, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("preco")))
	if err != nil {
		return productForm{}, false
	}
	return productForm{nome: c.FormValue("nome"), quantidade: q, preco: p}, true
}

// apiStatus reutiliza el status de la API si la falla vino de ella; si no, 500.
func apiStatus(err error) int {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return fiber.StatusInternalServerError
}

// money formatea en reales: 1234.5 -> "R$ 1234,50".
func money(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}
