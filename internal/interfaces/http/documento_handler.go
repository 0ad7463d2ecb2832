package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
)

// DocumentoHandler maneja facturas y boletas: emisión, pagos, anulación,
// notas de crédito y PDF.
type DocumentoHandler struct {
	emitir *facturacion.EmitirDocumentoUseCase
	pagos  *facturacion.PagosUseCase
	notas  *facturacion.NotaCreditoUseCase
	pdf    *facturacion.PDFUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(
	emitir *facturacion.EmitirDocumentoUseCase,
	pagos *facturacion.PagosUseCase,
	notas *facturacion.NotaCreditoUseCase,
	pdf *facturacion.PDFUseCase,
) *DocumentoHandler {
	return &DocumentoHandler{emitir: emitir, pagos: pagos, notas: notas, pdf: pdf}
}

// Emitir godoc
// @Summary      Emitir factura o boleta desde un pedido
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmitirDocumentoRequest  true  "Pedido, tipo y modalidad de pago"
// @Success      201   {object}  dto.DocumentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documentos [post]
func (h *DocumentoHandler) Emitir(c *fiber.Ctx) error {
	var in dto.EmitirDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PedidoID == "" || in.Tipo == "" || in.Modalidad == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pedido_id, tipo y modalidad son requeridos"})
	}
	out, err := h.emitir.Emitir(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener documento con líneas, pagos y saldo
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [get]
func (h *DocumentoHandler) Get(c *fiber.Ctx) error {
	out, err := h.pagos.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        tipo    query  string  false  "Factura o Boleta"
// @Param        estado  query  string  false  "Filtra por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.DocumentoResponse
// @Router       /api/documentos [get]
func (h *DocumentoHandler) List(c *fiber.Ctx) error {
	var in dto.ListDocumentosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.pagos.List(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListPagos godoc
// @Summary      Listar pagos de un documento
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {array}  dto.PagoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/pagos [get]
func (h *DocumentoHandler) ListPagos(c *fiber.Ctx) error {
	out, err := h.pagos.ListPagos(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// RegistrarPago godoc
// @Summary      Registrar un abono sobre el saldo pendiente
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.RegistrarPagoRequest  true  "Monto y medio de pago"
// @Success      201   {object}  dto.RegistrarPagoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/pagos [post]
func (h *DocumentoHandler) RegistrarPago(c *fiber.Ctx) error {
	var in dto.RegistrarPagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.pagos.RegistrarPago(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Anular godoc
// @Summary      Anular un documento sin pagos aplicados
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/anular [post]
func (h *DocumentoHandler) Anular(c *fiber.Ctx) error {
	out, err := h.pagos.Anular(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la representación PDF del documento
// @Tags         documentos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/pdf [get]
func (h *DocumentoHandler) PDF(c *fiber.Ctx) error {
	contenido, err := h.pdf.Generar(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="documento_%s.pdf"`, c.Params("id")))
	return c.Send(contenido)
}

// EmitirNotaCredito godoc
// @Summary      Emitir nota de crédito sobre una factura
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.EmitirNotaCreditoRequest  true  "Motivo y líneas a devolver"
// @Success      201   {object}  dto.NotaCreditoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/notas-credito [post]
func (h *DocumentoHandler) EmitirNotaCredito(c *fiber.Ctx) error {
	var in dto.EmitirNotaCreditoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Motivo == "" || len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "motivo y detalles son requeridos"})
	}
	out, err := h.notas.Emitir(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNotasCredito godoc
// @Summary      Listar notas de crédito de una factura
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {array}  dto.NotaCreditoResponse
// @Router       /api/documentos/{id}/notas-credito [get]
func (h *DocumentoHandler) ListNotasCredito(c *fiber.Ctx) error {
	out, err := h.notas.ListByFactura(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetNotaCredito godoc
// @Summary      Obtener nota de crédito por ID
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota de crédito"
// @Success      200  {object}  dto.NotaCreditoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notas-credito/{id} [get]
func (h *DocumentoHandler) GetNotaCredito(c *fiber.Ctx) error {
	out, err := h.notas.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
