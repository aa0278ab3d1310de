package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// Mensajes de la API (contrato público en portugués).
const (
	msgCreated           = "Produto cadastrado com sucesso!"
	msgUpdated           = "Produto atualizado com sucesso!"
	msgDeleted           = "Produto removido com sucesso!"
	msgReset             = "Estoque resetado com sucesso!"
	msgSold              = "Venda realizada com sucesso!"
	msgConflict          = "Produto já existe."
	msgNotFound          = "Produto não encontrado."
	msgListEmpty         = "Nenhum produto encontrado."
	msgInsufficientStock = "Quantidade insuficiente no estoque."
	msgInvalidBody       = "Corpo da requisição inválido."
	msgInvalidID         = "ID inválido."
	msgUnavailable       = "Armazenamento indisponível."
	msgInternal          = "Erro interno do servidor."
)

// writeError traduce un error de dominio al status HTTP y cuerpo {code, message}.
// notFoundMsg permite distinguir "lista vacía" de "producto inexistente".
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: msgConflict})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: msgInsufficientStock})
	case errors.Is(err, domain.ErrBackendUnavailable):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: msgUnavailable})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal})
	}
}

// ErrorHandler para fiber: errores no manejados por los handlers (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := msgInternal
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: codeName(code), Message: message})
}

func codeName(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "ERROR"
	}
}
