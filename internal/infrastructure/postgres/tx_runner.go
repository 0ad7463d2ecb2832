package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

// Ensure TxRunner implements ventas.TxRunner and facturacion.TxRunner.
var _ ventas.TxRunner = (*TxRunner)(nil)
var _ facturacion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVentas inicia una transacción, ejecuta fn con los repos del ciclo de
// pedido atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunVentas(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	documentoRepo repository.DocumentoRepository,
	pagoRepo repository.PagoRepository,
	carritoRepo repository.CarritoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPedidoRepository(tx),
		NewProductoRepository(tx),
		NewDocumentoRepository(tx),
		NewPagoRepository(tx),
		NewCarritoRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTesoreria igual que RunVentas pero con los repos de facturación,
// pagos y notas de crédito.
func (r *TxRunner) RunTesoreria(ctx context.Context, fn func(
	documentoRepo repository.DocumentoRepository,
	pagoRepo repository.PagoRepository,
	notaRepo repository.NotaCreditoRepository,
	productoRepo repository.ProductoRepository,
	pedidoRepo repository.PedidoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewDocumentoRepository(tx),
		NewPagoRepository(tx),
		NewNotaCreditoRepository(tx),
		NewProductoRepository(tx),
		NewPedidoRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
