package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
)

// CarritoHandler maneja el carrito del usuario autenticado (rol Cliente).
type CarritoHandler struct {
	uc *ventas.CarritoUseCase
}

// NewCarritoHandler construye el handler.
func NewCarritoHandler(uc *ventas.CarritoUseCase) *CarritoHandler {
	return &CarritoHandler{uc: uc}
}

// Ver godoc
// @Summary      Ver el carrito propio
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CarritoResponse
// @Router       /api/carrito [get]
func (h *CarritoHandler) Ver(c *fiber.Ctx) error {
	out, err := h.uc.Ver(c.UserContext(), GetUserID(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Agregar godoc
// @Summary      Agregar producto al carrito
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CarritoItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CarritoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carrito/items [post]
func (h *CarritoHandler) Agregar(c *fiber.Ctx) error {
	var in dto.CarritoItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductoID == "" || in.Cantidad <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id y cantidad positiva son requeridos"})
	}
	out, err := h.uc.Agregar(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Quitar godoc
// @Summary      Quitar producto del carrito
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Param        productoId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CarritoResponse
// @Router       /api/carrito/items/{productoId} [delete]
func (h *CarritoHandler) Quitar(c *fiber.Ctx) error {
	out, err := h.uc.Quitar(c.UserContext(), GetUserID(c), c.Params("productoId"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Vaciar godoc
// @Summary      Vaciar el carrito
// @Tags         carrito
// @Security     Bearer
// @Success      204
// @Router       /api/carrito [delete]
func (h *CarritoHandler) Vaciar(c *fiber.Ctx) error {
	if err := h.uc.Vaciar(c.UserContext(), GetUserID(c)); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Checkout: confirma el carrito y emite boleta pagada
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Medio de pago"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      409   {object}  dto.ErrorResponse  "Incluye faltantes si no hay stock"
// @Router       /api/carrito/checkout [post]
func (h *CarritoHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MedioPago == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "medio_pago es requerido"})
	}
	out, err := h.uc.Checkout(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
