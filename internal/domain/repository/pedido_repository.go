package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// PedidoRepository puerto de persistencia para pedidos y sus líneas.
// El pedido es dueño de sus detalles: Delete elimina en cascada.
type PedidoRepository interface {
	Create(ctx context.Context, p *entity.Pedido) error
	GetByID(ctx context.Context, id string) (*entity.Pedido, error)
	UpdateEstado(ctx context.Context, id string, estado entity.EstadoPedido) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	// List pagina con filtro opcional de estado (vacío = todos); el filtro
	// corre en la consulta para que la página no quede corta.
	List(ctx context.Context, estado entity.EstadoPedido, limit, offset int) ([]*entity.Pedido, error)
	ListPorCliente(ctx context.Context, clienteID string, limit, offset int) ([]*entity.Pedido, error)

	CreateDetalle(ctx context.Context, d *entity.DetallePedido) error
	UpdateDetalle(ctx context.Context, d *entity.DetallePedido) error
	DeleteDetalle(ctx context.Context, id string) error
	GetDetalles(ctx context.Context, pedidoID string) ([]*entity.DetallePedido, error)
	GetDetallePorProducto(ctx context.Context, pedidoID, productoID string) (*entity.DetallePedido, error)
}
