package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// SalesHandler maneja /api/v1/vendas.
type SalesHandler struct {
	uc *inventory.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *inventory.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// List godoc
// @Summary      Listar vendas
// @Tags         vendas
// @Produce      json
// @Success      200  {array}   dto.SaleResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/vendas/ [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.Context())
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumo das vendas
// @Tags         vendas
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/vendas/resumo [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Relatório de vendas em PDF
// @Tags         vendas
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/vendas/relatorio [get]
func (h *SalesHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ReportPDF(c.Context())
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
