package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.NotaCreditoRepository = (*NotaCreditoRepo)(nil)

const notaColumns = `id, factura_id, folio, fecha_emision, usuario_id, motivo, monto, estado, creado_en`
const detalleNotaColumns = `id, nota_id, producto_id, descripcion, cantidad, precio_unitario, subtotal`

// NotaCreditoRepo implementación del puerto NotaCreditoRepository sobre PostgreSQL.
type NotaCreditoRepo struct {
	q Querier
}

// NewNotaCreditoRepository construye el adaptador de persistencia para notas de crédito.
func NewNotaCreditoRepository(q Querier) *NotaCreditoRepo {
	return &NotaCreditoRepo{q: q}
}

// Create persiste la nota de crédito.
func (r *NotaCreditoRepo) Create(ctx context.Context, n *entity.NotaCredito) error {
	query := `
		INSERT INTO notas_credito (` + notaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, n.ID, n.FacturaID, n.Folio, n.FechaEmision, n.UsuarioID, n.Motivo, n.Monto, n.Estado, n.CreadoEn)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert nota de crédito: %w", err)
	}
	return nil
}

// MaxFolio devuelve el mayor folio de nota existente (0 si no hay).
func (r *NotaCreditoRepo) MaxFolio(ctx context.Context) (int, error) {
	var max int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(folio), 0) FROM notas_credito`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max folio nota: %w", err)
	}
	return max, nil
}

// GetByID obtiene una nota por ID.
func (r *NotaCreditoRepo) GetByID(ctx context.Context, id string) (*entity.NotaCredito, error) {
	var n entity.NotaCredito
	err := r.q.QueryRow(ctx, `SELECT `+notaColumns+` FROM notas_credito WHERE id = $1`, id).Scan(
		&n.ID, &n.FacturaID, &n.Folio, &n.FechaEmision, &n.UsuarioID, &n.Motivo, &n.Monto, &n.Estado, &n.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota de crédito: %w", err)
	}
	return &n, nil
}

// UpdateEstado cambia el estado de la nota.
func (r *NotaCreditoRepo) UpdateEstado(ctx context.Context, id string, estado entity.EstadoNotaCredito) error {
	_, err := r.q.Exec(ctx, `UPDATE notas_credito SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado nota: %w", err)
	}
	return nil
}

// ListByFactura lista las notas emitidas sobre una factura.
func (r *NotaCreditoRepo) ListByFactura(ctx context.Context, facturaID string) ([]*entity.NotaCredito, error) {
	rows, err := r.q.Query(ctx, `SELECT `+notaColumns+` FROM notas_credito WHERE factura_id = $1 ORDER BY fecha_emision`, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list notas por factura: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotaCredito
	for rows.Next() {
		var n entity.NotaCredito
		if err := rows.Scan(&n.ID, &n.FacturaID, &n.Folio, &n.FechaEmision, &n.UsuarioID, &n.Motivo, &n.Monto, &n.Estado, &n.CreadoEn); err != nil {
			return nil, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CreateDetalle persiste una línea de la nota.
func (r *NotaCreditoRepo) CreateDetalle(ctx context.Context, d *entity.DetalleNotaCredito) error {
	query := `
		INSERT INTO detalles_nota_credito (` + detalleNotaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, d.ID, d.NotaID, d.ProductoID, d.Descripcion, d.Cantidad, d.PrecioUnitario, d.Subtotal)
	if err != nil {
		return fmt.Errorf("insert detalle nota: %w", err)
	}
	return nil
}

// GetDetalles devuelve las líneas de la nota.
func (r *NotaCreditoRepo) GetDetalles(ctx context.Context, notaID string) ([]*entity.DetalleNotaCredito, error) {
	rows, err := r.q.Query(ctx, `SELECT `+detalleNotaColumns+` FROM detalles_nota_credito WHERE nota_id = $1 ORDER BY id`, notaID)
	if err != nil {
		return nil, fmt.Errorf("get detalles nota: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleNotaCredito
	for rows.Next() {
		var d entity.DetalleNotaCredito
		if err := rows.Scan(&d.ID, &d.NotaID, &d.ProductoID, &d.Descripcion, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle nota: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
