package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de solo lectura para reportes. Corre siempre
// sobre el pool, nunca dentro de una transacción de escritura.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador de consultas de reportes.
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// VentasEnviadas devuelve los pedidos en estado Enviado, con cliente y
// vendedor resueltos, filtrados opcionalmente por fecha de creación.
func (r *ReporteRepo) VentasEnviadas(ctx context.Context, desde, hasta *time.Time) ([]repository.VentaEnviadaResult, error) {
	query := `
		SELECT p.id, c.razon_social, c.rut, u.nombre, p.fecha_creacion, p.estado, p.total
		FROM pedidos p
		JOIN clientes c ON c.id = p.cliente_id
		JOIN usuarios u ON u.id = p.usuario_id
		WHERE p.estado = $1
		  AND ($2::timestamptz IS NULL OR p.fecha_creacion >= $2)
		  AND ($3::timestamptz IS NULL OR p.fecha_creacion <= $3)
		ORDER BY p.fecha_creacion DESC`
	rows, err := r.q.Query(ctx, query, entity.PedidoEnviado, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("ventas enviadas: %w", err)
	}
	defer rows.Close()

	var results []repository.VentaEnviadaResult
	for rows.Next() {
		var v repository.VentaEnviadaResult
		err := rows.Scan(&v.PedidoID, &v.ClienteNombre, &v.ClienteRUT, &v.Vendedor, &v.Fecha, &v.Estado, &v.Total)
		if err != nil {
			return nil, fmt.Errorf("scan venta enviada: %w", err)
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

// DetallesVendidos devuelve las líneas de documentos que representan venta
// real, con el costo congelado al momento de la emisión.
func (r *ReporteRepo) DetallesVendidos(ctx context.Context, desde, hasta *time.Time) ([]repository.VentaDetalleResult, error) {
	query := `
		SELECT d.fecha_emision, d.tipo_documento, d.folio, u.nombre, d.razon_social,
		       COALESCE(pr.razon_social, ''), p.nombre, dd.cantidad, dd.costo_unitario_venta, dd.precio_unitario_venta
		FROM detalles_documento dd
		JOIN documentos_venta d ON d.id = dd.documento_id
		JOIN usuarios u ON u.id = d.vendedor_id
		JOIN productos p ON p.id = dd.producto_id
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		WHERE d.estado IN ($1, $2, $3)
		  AND ($4::timestamptz IS NULL OR d.fecha_emision >= $4)
		  AND ($5::timestamptz IS NULL OR d.fecha_emision <= $5)
		ORDER BY d.fecha_emision DESC, d.folio DESC, dd.id`
	rows, err := r.q.Query(ctx, query,
		entity.DocPagada, entity.DocPagoParcial, entity.DocDevueltaParcial, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("detalles vendidos: %w", err)
	}
	defer rows.Close()

	var results []repository.VentaDetalleResult
	for rows.Next() {
		var v repository.VentaDetalleResult
		err := rows.Scan(
			&v.FechaEmision, &v.TipoDocumento, &v.Folio, &v.Vendedor, &v.ClienteNombre,
			&v.ProveedorNombre, &v.ProductoNombre, &v.Cantidad, &v.CostoUnitario, &v.PrecioUnitarioBruto,
		)
		if err != nil {
			return nil, fmt.Errorf("scan detalle vendido: %w", err)
		}
		results = append(results, v)
	}
	return results, rows.Err()
}
