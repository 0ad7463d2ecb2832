package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

const pedidoColumns = `id, cliente_id, usuario_id, total, estado, direccion_despacho, observaciones, fecha_creacion, fecha_actualizacion`
const detallePedidoColumns = `id, pedido_id, producto_id, cantidad, precio_unitario_venta, subtotal`

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos.
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create persiste el encabezado del pedido.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (` + pedidoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClienteID, p.UsuarioID, p.Total, p.Estado, p.DireccionDespacho, p.Observaciones, p.FechaCreacion, p.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *PedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	var p entity.Pedido
	err := r.q.QueryRow(ctx, `SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1`, id).Scan(
		&p.ID, &p.ClienteID, &p.UsuarioID, &p.Total, &p.Estado, &p.DireccionDespacho, &p.Observaciones, &p.FechaCreacion, &p.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &p, nil
}

// UpdateEstado cambia el estado del pedido.
func (r *PedidoRepo) UpdateEstado(ctx context.Context, id string, estado entity.EstadoPedido) error {
	_, err := r.q.Exec(ctx,
		`UPDATE pedidos SET estado = $2, fecha_actualizacion = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado pedido: %w", err)
	}
	return nil
}

// UpdateTotal fija el total del pedido.
func (r *PedidoRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE pedidos SET total = $2, fecha_actualizacion = now() WHERE id = $1`, id, total)
	if err != nil {
		return fmt.Errorf("update total pedido: %w", err)
	}
	return nil
}

// List lista pedidos, los más recientes primero, con filtro opcional de estado.
func (r *PedidoRepo) List(ctx context.Context, estado entity.EstadoPedido, limit, offset int) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos
		WHERE ($1 = '' OR estado = $1) ORDER BY fecha_creacion DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(estado), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	return scanPedidos(rows)
}

// ListPorCliente lista los pedidos de un cliente.
func (r *PedidoRepo) ListPorCliente(ctx context.Context, clienteID string, limit, offset int) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE cliente_id = $1 ORDER BY fecha_creacion DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, clienteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos por cliente: %w", err)
	}
	defer rows.Close()
	return scanPedidos(rows)
}

// CreateDetalle persiste una línea de pedido.
func (r *PedidoRepo) CreateDetalle(ctx context.Context, d *entity.DetallePedido) error {
	query := `
		INSERT INTO detalles_pedido (` + detallePedidoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, d.ID, d.PedidoID, d.ProductoID, d.Cantidad, d.PrecioUnitarioVenta, d.Subtotal)
	if err != nil {
		return fmt.Errorf("insert detalle pedido: %w", err)
	}
	return nil
}

// UpdateDetalle actualiza cantidad y subtotal de una línea.
func (r *PedidoRepo) UpdateDetalle(ctx context.Context, d *entity.DetallePedido) error {
	_, err := r.q.Exec(ctx,
		`UPDATE detalles_pedido SET cantidad = $2, precio_unitario_venta = $3, subtotal = $4 WHERE id = $1`,
		d.ID, d.Cantidad, d.PrecioUnitarioVenta, d.Subtotal)
	if err != nil {
		return fmt.Errorf("update detalle pedido: %w", err)
	}
	return nil
}

// DeleteDetalle elimina una línea de pedido.
func (r *PedidoRepo) DeleteDetalle(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM detalles_pedido WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete detalle pedido: %w", err)
	}
	return nil
}

// GetDetalles devuelve las líneas del pedido en orden de inserción.
func (r *PedidoRepo) GetDetalles(ctx context.Context, pedidoID string) ([]*entity.DetallePedido, error) {
	query := `SELECT ` + detallePedidoColumns + ` FROM detalles_pedido WHERE pedido_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("get detalles pedido: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetallePedido
	for rows.Next() {
		var d entity.DetallePedido
		if err := rows.Scan(&d.ID, &d.PedidoID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitarioVenta, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle pedido: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetDetallePorProducto busca la línea del pedido para un producto.
func (r *PedidoRepo) GetDetallePorProducto(ctx context.Context, pedidoID, productoID string) (*entity.DetallePedido, error) {
	var d entity.DetallePedido
	err := r.q.QueryRow(ctx,
		`SELECT `+detallePedidoColumns+` FROM detalles_pedido WHERE pedido_id = $1 AND producto_id = $2`,
		pedidoID, productoID,
	).Scan(&d.ID, &d.PedidoID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitarioVenta, &d.Subtotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detalle por producto: %w", err)
	}
	return &d, nil
}

func scanPedidos(rows pgx.Rows) ([]*entity.Pedido, error) {
	var list []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(
			&p.ID, &p.ClienteID, &p.UsuarioID, &p.Total, &p.Estado, &p.DireccionDespacho, &p.Observaciones, &p.FechaCreacion, &p.FechaActualizacion,
		); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
