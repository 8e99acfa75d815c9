package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código.
// Los errores del libro se revisan antes que los genéricos: ErrSourceNotFound no es ErrNotFound.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidTransfer),
		errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrSourceNotFound):
		return fiber.StatusNotFound, "SOURCE_NOT_FOUND"
	case errors.Is(err, domain.ErrMovementNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInconsistentState):
		return fiber.StatusConflict, "INCONSISTENT_STATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusServiceUnavailable, "STORAGE_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pageFromQuery lee limit y offset (por defecto 20 y 0, máximo 100).
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}
