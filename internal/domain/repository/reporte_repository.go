package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// VentaEnviadaResult resultado crudo de la consulta de pedidos enviados.
// Lo produce la DB; el use case lo convierte en filas de reporte.
type VentaEnviadaResult struct {
	PedidoID      string
	ClienteNombre string
	ClienteRUT    string
	Vendedor      string
	Fecha         time.Time
	Estado        entity.EstadoPedido
	Total         decimal.Decimal
}

// VentaDetalleResult resultado crudo por línea de documento vendida,
// insumo del reporte de rentabilidad.
type VentaDetalleResult struct {
	FechaEmision        time.Time
	TipoDocumento       entity.TipoDocumento
	Folio               int
	Vendedor            string
	ClienteNombre       string
	ProveedorNombre     string
	ProductoNombre      string
	Cantidad            int
	CostoUnitario       decimal.Decimal
	PrecioUnitarioBruto decimal.Decimal
}

// ReporteRepository consultas de solo lectura para estadísticas y reportes.
type ReporteRepository interface {
	// VentasEnviadas devuelve los pedidos en estado Enviado con su documento,
	// filtrados opcionalmente por rango de fechas de creación.
	VentasEnviadas(ctx context.Context, desde, hasta *time.Time) ([]VentaEnviadaResult, error)
	// DetallesVendidos devuelve las líneas de documentos en estados de venta
	// real (Pagada, Pago Parcial, Devuelta Parcial), read-only.
	DetallesVendidos(ctx context.Context, desde, hasta *time.Time) ([]VentaDetalleResult, error)
}
