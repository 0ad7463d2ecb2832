package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// DocumentoRepository puerto de persistencia para documentos de venta,
// sus líneas y asignación de folio.
type DocumentoRepository interface {
	Create(ctx context.Context, d *entity.DocumentoVenta) error
	GetByID(ctx context.Context, id string) (*entity.DocumentoVenta, error)
	GetByPedidoID(ctx context.Context, pedidoID string) (*entity.DocumentoVenta, error)
	UpdateEstado(ctx context.Context, id string, estado entity.EstadoDocumento) error
	UpdateTotales(ctx context.Context, id string, neto, iva, total decimal.Decimal) error
	// List pagina con filtros opcionales de tipo y estado (vacíos = todos);
	// el filtro corre en la consulta para que la página no quede corta.
	List(ctx context.Context, tipo entity.TipoDocumento, estado entity.EstadoDocumento, limit, offset int) ([]*entity.DocumentoVenta, error)
	ListPorCliente(ctx context.Context, clienteID string, limit, offset int) ([]*entity.DocumentoVenta, error)

	// MaxFolio devuelve el mayor folio existente para el tipo (0 si no hay).
	MaxFolio(ctx context.Context, tipo entity.TipoDocumento) (int, error)

	CreateDetalle(ctx context.Context, d *entity.DetalleDocumento) error
	DeleteDetalles(ctx context.Context, documentoID string) error
	GetDetalles(ctx context.Context, documentoID string) ([]*entity.DetalleDocumento, error)

	// Facturas pendientes para el trabajo de recordatorios: las que vencen
	// exactamente en la fecha dada y las ya vencidas a esa fecha.
	ListFacturasPorVencer(ctx context.Context, vencimiento time.Time) ([]*entity.DocumentoVenta, error)
	ListFacturasVencidas(ctx context.Context, hoy time.Time) ([]*entity.DocumentoVenta, error)
}

// PagoRepository puerto de persistencia para pagos (inmutables).
type PagoRepository interface {
	Create(ctx context.Context, p *entity.Pago) error
	ListByDocumento(ctx context.Context, documentoID string) ([]*entity.Pago, error)
	// SumByDocumento suma los montos pagados contra el documento.
	SumByDocumento(ctx context.Context, documentoID string) (decimal.Decimal, error)
}

// NotaCreditoRepository puerto de persistencia para notas de crédito.
type NotaCreditoRepository interface {
	Create(ctx context.Context, n *entity.NotaCredito) error
	// MaxFolio devuelve el mayor folio de nota existente (0 si no hay).
	MaxFolio(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id string) (*entity.NotaCredito, error)
	UpdateEstado(ctx context.Context, id string, estado entity.EstadoNotaCredito) error
	ListByFactura(ctx context.Context, facturaID string) ([]*entity.NotaCredito, error)

	CreateDetalle(ctx context.Context, d *entity.DetalleNotaCredito) error
	GetDetalles(ctx context.Context, notaID string) ([]*entity.DetalleNotaCredito, error)
}

// CarritoRepository puerto de persistencia para el carrito por usuario.
type CarritoRepository interface {
	Get(ctx context.Context, usuarioID string) (*entity.Carrito, error)
	Save(ctx context.Context, c *entity.Carrito) error
	Delete(ctx context.Context, usuarioID string) error
}
