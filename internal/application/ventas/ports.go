package ventas

import (
	"context"
	"time"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del ciclo de pedido.
type TxRunner interface {
	RunVentas(ctx context.Context, fn func(
		pedidoRepo repository.PedidoRepository,
		productoRepo repository.ProductoRepository,
		documentoRepo repository.DocumentoRepository,
		pagoRepo repository.PagoRepository,
		carritoRepo repository.CarritoRepository,
	) error) error
}

// EmisionContado opciones para emitir un documento pagado al contado
// dentro de la transacción del caller.
type EmisionContado struct {
	Tipo       entity.TipoDocumento
	MedioPago  string
	Referencia string // referencia sintética del pago generado
	Ahora      time.Time
}

// EmisorDocumentos emite un documento de venta usando los repositorios del
// caller (misma transacción). Lo implementa el motor de facturación; el
// checkout lo usa para producir la boleta pagada del pedido.
type EmisorDocumentos interface {
	EmitirContadoEnTx(
		ctx context.Context,
		documentoRepo repository.DocumentoRepository,
		pagoRepo repository.PagoRepository,
		pedido *entity.Pedido,
		detalles []*entity.DetallePedido,
		productos map[string]*entity.Producto,
		cliente *entity.Cliente,
		op EmisionContado,
	) (*entity.DocumentoVenta, error)
}
