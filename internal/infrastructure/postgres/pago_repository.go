package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

const pagoColumns = `id, documento_id, fecha_pago, monto_pagado, metodo_pago, referencia, observaciones`

// PagoRepo implementación del puerto PagoRepository sobre PostgreSQL.
// Solo inserta y lee: los pagos no se modifican ni eliminan.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador de persistencia para pagos.
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create persiste un pago.
func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	query := `
		INSERT INTO pagos (` + pagoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.DocumentoID, p.FechaPago, p.MontoPagado, p.MetodoPago, p.Referencia, p.Observaciones)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListByDocumento lista los pagos de un documento en orden cronológico.
func (r *PagoRepo) ListByDocumento(ctx context.Context, documentoID string) ([]*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos WHERE documento_id = $1 ORDER BY fecha_pago`
	rows, err := r.q.Query(ctx, query, documentoID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.DocumentoID, &p.FechaPago, &p.MontoPagado, &p.MetodoPago, &p.Referencia, &p.Observaciones); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByDocumento suma los montos pagados contra el documento.
func (r *PagoRepo) SumByDocumento(ctx context.Context, documentoID string) (decimal.Decimal, error) {
	var suma decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(monto_pagado), 0) FROM pagos WHERE documento_id = $1`, documentoID,
	).Scan(&suma)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pagos: %w", err)
	}
	return suma, nil
}
