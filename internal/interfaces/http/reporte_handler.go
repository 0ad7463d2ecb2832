package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/reportes"
)

// ReporteHandler maneja los reportes de ventas y rentabilidad.
type ReporteHandler struct {
	uc       *reportes.UseCase
	planilla reportes.PlanillaWriter
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reportes.UseCase, planilla reportes.PlanillaWriter) *ReporteHandler {
	return &ReporteHandler{uc: uc, planilla: planilla}
}

// Ventas godoc
// @Summary      Reporte de pedidos enviados
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "YYYY-MM-DD"
// @Param        hasta  query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.ReporteVentasDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/ventas [get]
func (h *ReporteHandler) Ventas(c *fiber.Ctx) error {
	var in dto.ReporteRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.Ventas(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Rentabilidad godoc
// @Summary      Reporte de rentabilidad por línea vendida
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "YYYY-MM-DD"
// @Param        hasta  query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.ReporteRentabilidadDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/rentabilidad [get]
func (h *ReporteHandler) Rentabilidad(c *fiber.Ctx) error {
	var in dto.ReporteRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.Rentabilidad(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ExportarRentabilidad godoc
// @Summary      Exportar el reporte de rentabilidad a planilla CSV
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "YYYY-MM-DD"
// @Param        hasta  query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      202
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/rentabilidad/exportar [post]
func (h *ReporteHandler) ExportarRentabilidad(c *fiber.Ctx) error {
	var in dto.ReporteRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	if err := h.uc.ExportarRentabilidad(c.UserContext(), in, h.planilla); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
