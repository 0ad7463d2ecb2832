package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	"github.com/NinoOnFire/ticashop/internal/domain"
)

// errorStock cuerpo de error 409 con el detalle de productos faltantes.
type errorStock struct {
	dto.ErrorResponse
	Faltantes []dto.FaltanteStock `json:"faltantes"`
}

// responderError traduce errores de dominio a respuestas HTTP. Los handlers
// validan su entrada; todo lo demás pasa por aquí.
func responderError(c *fiber.Ctx, err error) error {
	var faltaStock *ventas.FaltaStockError
	if errors.As(err, &faltaStock) {
		return c.Status(fiber.StatusConflict).JSON(errorStock{
			ErrorResponse: dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: faltaStock.Error()},
			Faltantes:     faltaStock.Faltantes,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrRUTInvalido),
		errors.Is(err, domain.ErrPedidoSinLineas),
		errors.Is(err, domain.ErrNotaSinMonto),
		errors.Is(err, domain.ErrCantidadDevuelta):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrEstadoPedido),
		errors.Is(err, domain.ErrEstadoDocumento),
		errors.Is(err, domain.ErrPedidoYaFacturado),
		errors.Is(err, domain.ErrDocumentoPagado),
		errors.Is(err, domain.ErrPagoExcedeSaldo),
		errors.Is(err, domain.ErrPlazoNotaCredito),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrStockInsuficiente),
		errors.Is(err, domain.ErrConflictoStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
