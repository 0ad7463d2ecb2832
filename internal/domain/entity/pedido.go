package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoPedido estado del ciclo de vida de un pedido.
type EstadoPedido string

// Estados de pedido. Transiciones permitidas:
// Borrador → Pendiente → Procesando → Enviado; Borrador/Pendiente → Cancelado.
// No hay transiciones hacia atrás.
const (
	PedidoBorrador   EstadoPedido = "Borrador"
	PedidoPendiente  EstadoPedido = "Pendiente"
	PedidoProcesando EstadoPedido = "Procesando"
	PedidoEnviado    EstadoPedido = "Enviado"
	PedidoCancelado  EstadoPedido = "Cancelado"
)

// Valido reporta si el estado es uno de los conocidos.
func (e EstadoPedido) Valido() bool {
	switch e {
	case PedidoBorrador, PedidoPendiente, PedidoProcesando, PedidoEnviado, PedidoCancelado:
		return true
	}
	return false
}

// PuedeTransicionar reporta si la transición e → destino está permitida.
func (e EstadoPedido) PuedeTransicionar(destino EstadoPedido) bool {
	switch e {
	case PedidoBorrador:
		return destino == PedidoPendiente || destino == PedidoCancelado
	case PedidoPendiente:
		return destino == PedidoProcesando || destino == PedidoCancelado
	case PedidoProcesando:
		return destino == PedidoEnviado
	}
	return false
}

// Pedido encabezado de un pedido de venta. Es dueño de sus detalles
// (eliminar el pedido elimina sus líneas en cascada).
type Pedido struct {
	ID                 string
	ClienteID          string
	UsuarioID          *string // vendedor o comprador que lo creó
	Total              decimal.Decimal
	Estado             EstadoPedido
	DireccionDespacho  string
	Observaciones      string
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// DetallePedido línea de un pedido. Subtotal = Cantidad × PrecioUnitarioVenta,
// recalculado en cada escritura.
type DetallePedido struct {
	ID                  string
	PedidoID            string
	ProductoID          string
	Cantidad            int
	PrecioUnitarioVenta decimal.Decimal
	Subtotal            decimal.Decimal
}

// CalcularSubtotal fija Subtotal desde cantidad y precio.
func (d *DetallePedido) CalcularSubtotal() {
	d.Subtotal = d.PrecioUnitarioVenta.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}

// TotalDetalles suma los subtotales de un conjunto de líneas.
func TotalDetalles(detalles []*DetallePedido) decimal.Decimal {
	total := decimal.Zero
	for _, d := range detalles {
		total = total.Add(d.Subtotal)
	}
	return total
}
