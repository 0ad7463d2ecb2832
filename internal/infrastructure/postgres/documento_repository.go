package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

const documentoColumns = `id, tipo_documento, folio, cliente_id, vendedor_id, pedido_id, neto, iva, total, estado,
	fecha_emision, fecha_vencimiento, dias_plazo, medio_de_pago, razon_social, rut, giro, direccion, ciudad, comuna,
	fecha_creacion, fecha_actualizacion`

const detalleDocumentoColumns = `id, documento_id, producto_id, cantidad, precio_unitario_venta, subtotal, costo_unitario_venta`

// DocumentoRepo implementación del puerto DocumentoRepository sobre PostgreSQL.
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador de persistencia para documentos de venta.
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

// Create persiste el documento. La unicidad (tipo, folio) y (pedido_id)
// convierte carreras de folio o doble emisión en ErrConflict.
func (r *DocumentoRepo) Create(ctx context.Context, d *entity.DocumentoVenta) error {
	query := `
		INSERT INTO documentos_venta (` + documentoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.TipoDocumento, d.Folio, d.ClienteID, d.VendedorID, d.PedidoID, d.Neto, d.IVA, d.Total, d.Estado,
		d.FechaEmision, d.FechaVencimiento, d.DiasPlazo, d.MedioDePago, d.RazonSocial, d.RUT, d.Giro, d.Direccion, d.Ciudad, d.Comuna,
		d.FechaCreacion, d.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentoRepo) GetByID(ctx context.Context, id string) (*entity.DocumentoVenta, error) {
	return r.getBy(ctx, `SELECT `+documentoColumns+` FROM documentos_venta WHERE id = $1`, id)
}

// GetByPedidoID obtiene el documento emitido para un pedido (nil si no hay).
func (r *DocumentoRepo) GetByPedidoID(ctx context.Context, pedidoID string) (*entity.DocumentoVenta, error) {
	return r.getBy(ctx, `SELECT `+documentoColumns+` FROM documentos_venta WHERE pedido_id = $1`, pedidoID)
}

func (r *DocumentoRepo) getBy(ctx context.Context, query string, arg any) (*entity.DocumentoVenta, error) {
	var d entity.DocumentoVenta
	err := scanDocumentoRow(r.q.QueryRow(ctx, query, arg), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return &d, nil
}

// UpdateEstado cambia el estado del documento.
func (r *DocumentoRepo) UpdateEstado(ctx context.Context, id string, estado entity.EstadoDocumento) error {
	_, err := r.q.Exec(ctx,
		`UPDATE documentos_venta SET estado = $2, fecha_actualizacion = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado documento: %w", err)
	}
	return nil
}

// UpdateTotales fija neto, IVA y total del documento.
func (r *DocumentoRepo) UpdateTotales(ctx context.Context, id string, neto, iva, total decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE documentos_venta SET neto = $2, iva = $3, total = $4, fecha_actualizacion = now() WHERE id = $1`,
		id, neto, iva, total)
	if err != nil {
		return fmt.Errorf("update totales documento: %w", err)
	}
	return nil
}

// List lista documentos, con filtros opcionales por tipo y estado.
func (r *DocumentoRepo) List(ctx context.Context, tipo entity.TipoDocumento, estado entity.EstadoDocumento, limit, offset int) ([]*entity.DocumentoVenta, error) {
	query := `SELECT ` + documentoColumns + ` FROM documentos_venta
		WHERE ($1 = '' OR tipo_documento = $1) AND ($2 = '' OR estado = $2)
		ORDER BY fecha_emision DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, string(tipo), string(estado), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	return scanDocumentos(rows)
}

// ListPorCliente lista los documentos de un cliente.
func (r *DocumentoRepo) ListPorCliente(ctx context.Context, clienteID string, limit, offset int) ([]*entity.DocumentoVenta, error) {
	query := `SELECT ` + documentoColumns + ` FROM documentos_venta
		WHERE cliente_id = $1 ORDER BY fecha_emision DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, clienteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documentos por cliente: %w", err)
	}
	defer rows.Close()
	return scanDocumentos(rows)
}

// MaxFolio devuelve el mayor folio existente para el tipo (0 si no hay).
func (r *DocumentoRepo) MaxFolio(ctx context.Context, tipo entity.TipoDocumento) (int, error) {
	var max int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(folio), 0) FROM documentos_venta WHERE tipo_documento = $1`, tipo,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max folio: %w", err)
	}
	return max, nil
}

// CreateDetalle persiste una línea del documento.
func (r *DocumentoRepo) CreateDetalle(ctx context.Context, d *entity.DetalleDocumento) error {
	query := `
		INSERT INTO detalles_documento (` + detalleDocumentoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, d.ID, d.DocumentoID, d.ProductoID, d.Cantidad, d.PrecioUnitarioVenta, d.Subtotal, d.CostoUnitarioVenta)
	if err != nil {
		return fmt.Errorf("insert detalle documento: %w", err)
	}
	return nil
}

// DeleteDetalles elimina todas las líneas del documento (resincronización).
func (r *DocumentoRepo) DeleteDetalles(ctx context.Context, documentoID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM detalles_documento WHERE documento_id = $1`, documentoID)
	if err != nil {
		return fmt.Errorf("delete detalles documento: %w", err)
	}
	return nil
}

// GetDetalles devuelve las líneas del documento.
func (r *DocumentoRepo) GetDetalles(ctx context.Context, documentoID string) ([]*entity.DetalleDocumento, error) {
	query := `SELECT ` + detalleDocumentoColumns + ` FROM detalles_documento WHERE documento_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, documentoID)
	if err != nil {
		return nil, fmt.Errorf("get detalles documento: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleDocumento
	for rows.Next() {
		var d entity.DetalleDocumento
		if err := rows.Scan(&d.ID, &d.DocumentoID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitarioVenta, &d.Subtotal, &d.CostoUnitarioVenta); err != nil {
			return nil, fmt.Errorf("scan detalle documento: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListFacturasPorVencer facturas pendientes que vencen exactamente en la fecha dada.
func (r *DocumentoRepo) ListFacturasPorVencer(ctx context.Context, vencimiento time.Time) ([]*entity.DocumentoVenta, error) {
	query := `SELECT ` + documentoColumns + ` FROM documentos_venta
		WHERE tipo_documento = $1 AND estado IN ($2, $3) AND fecha_vencimiento::date = $4::date
		ORDER BY folio`
	rows, err := r.q.Query(ctx, query, entity.DocFactura, entity.DocEmitida, entity.DocPagoParcial, vencimiento)
	if err != nil {
		return nil, fmt.Errorf("list facturas por vencer: %w", err)
	}
	defer rows.Close()
	return scanDocumentos(rows)
}

// ListFacturasVencidas facturas pendientes cuya fecha de vencimiento ya pasó.
func (r *DocumentoRepo) ListFacturasVencidas(ctx context.Context, hoy time.Time) ([]*entity.DocumentoVenta, error) {
	query := `SELECT ` + documentoColumns + ` FROM documentos_venta
		WHERE tipo_documento = $1 AND estado IN ($2, $3) AND fecha_vencimiento::date < $4::date
		ORDER BY fecha_vencimiento`
	rows, err := r.q.Query(ctx, query, entity.DocFactura, entity.DocEmitida, entity.DocPagoParcial, hoy)
	if err != nil {
		return nil, fmt.Errorf("list facturas vencidas: %w", err)
	}
	defer rows.Close()
	return scanDocumentos(rows)
}

func scanDocumentoRow(row pgx.Row, d *entity.DocumentoVenta) error {
	return row.Scan(
		&d.ID, &d.TipoDocumento, &d.Folio, &d.ClienteID, &d.VendedorID, &d.PedidoID, &d.Neto, &d.IVA, &d.Total, &d.Estado,
		&d.FechaEmision, &d.FechaVencimiento, &d.DiasPlazo, &d.MedioDePago, &d.RazonSocial, &d.RUT, &d.Giro, &d.Direccion, &d.Ciudad, &d.Comuna,
		&d.FechaCreacion, &d.FechaActualizacion,
	)
}

func scanDocumentos(rows pgx.Rows) ([]*entity.DocumentoVenta, error) {
	var list []*entity.DocumentoVenta
	for rows.Next() {
		var d entity.DocumentoVenta
		if err := scanDocumentoRow(rows, &d); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
