package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
)

// PedidoHandler maneja el ciclo de vida del pedido de venta presencial.
type PedidoHandler struct {
	uc        *ventas.PedidoUseCase
	confirmar *ventas.ConfirmarPedidoUseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *ventas.PedidoUseCase, confirmar *ventas.ConfirmarPedidoUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc, confirmar: confirmar}
}

// Crear godoc
// @Summary      Crear pedido en borrador
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePedidoRequest  true  "Cliente y líneas iniciales"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClienteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id es requerido"})
	}
	out, err := h.uc.Crear(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "Filtra por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var in dto.ListPedidosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AgregarLinea godoc
// @Summary      Agregar o acumular una línea del pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.AgregarDetalleRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/detalles [post]
func (h *PedidoHandler) AgregarLinea(c *fiber.Ctx) error {
	var in dto.AgregarDetalleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductoID == "" || in.Cantidad <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id y cantidad positiva son requeridos"})
	}
	out, err := h.uc.AgregarLinea(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// QuitarLinea godoc
// @Summary      Quitar una línea del pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id          path  string  true  "ID del pedido"
// @Param        productoId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/detalles/{productoId} [delete]
func (h *PedidoHandler) QuitarLinea(c *fiber.Ctx) error {
	out, err := h.uc.QuitarLinea(c.UserContext(), c.Params("id"), c.Params("productoId"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Enviar godoc
// @Summary      Pasar el pedido de borrador a pendiente
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/enviar [post]
func (h *PedidoHandler) Enviar(c *fiber.Ctx) error {
	out, err := h.uc.EnviarAPendiente(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Confirmar godoc
// @Summary      Confirmar pedido pendiente descontando stock
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse  "Incluye faltantes si no hay stock"
// @Router       /api/pedidos/{id}/confirmar [post]
func (h *PedidoHandler) Confirmar(c *fiber.Ctx) error {
	out, err := h.confirmar.Confirmar(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Despachar godoc
// @Summary      Marcar el pedido como enviado
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/despachar [post]
func (h *PedidoHandler) Despachar(c *fiber.Ctx) error {
	out, err := h.uc.MarcarEnviado(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar pedido (solo borrador o pendiente)
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
