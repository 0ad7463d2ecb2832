package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReporteRequest parámetros comunes de los reportes.
type ReporteRequest struct {
	Desde string `query:"desde"` // YYYY-MM-DD; opcional
	Hasta string `query:"hasta"` // YYYY-MM-DD; opcional
}

// ── Ventas enviadas ───────────────────────────────────────────────────────────

// VentaEnviadaDTO fila del reporte de pedidos enviados.
type VentaEnviadaDTO struct {
	PedidoID string          `json:"pedido_id"`
	Cliente  string          `json:"cliente"`
	RUT      string          `json:"rut"`
	Vendedor string          `json:"vendedor"`
	Fecha    string          `json:"fecha"` // YYYY-MM-DD
	Estado   string          `json:"estado"`
	Total    decimal.Decimal `json:"total"`
}

// ReporteVentasDTO respuesta de GET /api/reportes/ventas.
type ReporteVentasDTO struct {
	Periodo     PeriodoDTO        `json:"periodo"`
	Filas       []VentaEnviadaDTO `json:"filas"`
	TotalVentas decimal.Decimal   `json:"total_ventas"`
}

// ── Rentabilidad ──────────────────────────────────────────────────────────────

// RentabilidadDTO fila del reporte de rentabilidad por línea vendida.
// El margen se calcula sobre el precio neto (sin IVA) menos el costo congelado.
type RentabilidadDTO struct {
	Fecha         string          `json:"fecha"`
	Documento     string          `json:"documento"` // "Factura 1042", "Boleta 1007"
	Vendedor      string          `json:"vendedor"`
	Cliente       string          `json:"cliente"`
	Proveedor     string          `json:"proveedor,omitempty"`
	Producto      string          `json:"producto"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	PrecioNeto    decimal.Decimal `json:"precio_neto"`
	Margen        decimal.Decimal `json:"margen"`
	MargenPct     decimal.Decimal `json:"margen_pct"`
}

// ReporteRentabilidadDTO respuesta de GET /api/reportes/rentabilidad.
type ReporteRentabilidadDTO struct {
	Periodo     PeriodoDTO        `json:"periodo"`
	Filas       []RentabilidadDTO `json:"filas"`
	MargenTotal decimal.Decimal   `json:"margen_total"`
}

// PeriodoDTO rango de fechas del reporte.
type PeriodoDTO struct {
	Desde string `json:"desde,omitempty"`
	Hasta string `json:"hasta,omitempty"`
}
