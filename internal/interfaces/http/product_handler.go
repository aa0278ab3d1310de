package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// SaleObserver recibe cada venta confirmada (métricas).
type SaleObserver interface {
	ObserveSale(quantidade int64, valor decimal.Decimal)
}

// ProductHandler maneja las peticiones HTTP de /api/v1/produtos.
type ProductHandler struct {
	uc       *inventory.ProductUseCase
	observer SaleObserver
}

// NewProductHandler construye el handler. observer puede ser nil.
func NewProductHandler(uc *inventory.ProductUseCase, observer SaleObserver) *ProductHandler {
	return &ProductHandler{uc: uc, observer: observer}
}

// Create godoc
// @Summary      Cadastrar produto
// @Description  El ID se asigna como el mayor existente + 1. El nombre es único sin distinguir mayúsculas.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/ [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: msgInvalidBody})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductMessageResponse{Message: msgCreated, Produto: *out})
}

// List godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/ [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err, msgListEmpty)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar produto por ID
// @Tags         produtos
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Vender produto
// @Description  Descuenta el stock y registra la venta en una sola transacción.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.SellProductRequest  true  "Cantidad a vender"
// @Success      200   {object}  dto.SellMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/{id}/vender/ [put]
func (h *ProductHandler) Sell(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.SellProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: msgInvalidBody})
	}
	out, err := h.uc.Sell(c.Context(), id, in.Quantidade)
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	if h.observer != nil {
		h.observer.ObserveSale(out.Venda.QuantidadeVendida, out.Venda.ValorVenda)
	}
	return c.JSON(dto.SellMessageResponse{Message: msgSold, Produto: out.Produto, Venda: out.Venda})
}

// Update godoc
// @Summary      Atualizar produto
// @Description  Actualización parcial: solo se cambian los campos enviados.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: msgInvalidBody})
		}
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.JSON(dto.ProductMessageResponse{Message: msgUpdated, Produto: *out})
}

// Delete godoc
// @Summary      Remover produto
// @Description  Las ventas del producto se conservan.
// @Tags         produtos
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.JSON(dto.MessageResponse{Message: msgDeleted})
}

// Reset godoc
// @Summary      Resetar estoque
// @Description  Deja solo los productos semilla y vacía el libro de ventas.
// @Tags         produtos
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/produtos/ [delete]
func (h *ProductHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.Context()); err != nil {
		return writeError(c, err, msgNotFound)
	}
	return c.JSON(dto.MessageResponse{Message: msgReset})
}

// paramID lee :id como entero; si no lo es responde 400 y devuelve un error para cortar el handler.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}
	return int64(id), nil
}
