package facturacion

import (
	"context"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cubre emisión, pagos y notas de crédito.
type TxRunner interface {
	RunTesoreria(ctx context.Context, fn func(
		documentoRepo repository.DocumentoRepository,
		pagoRepo repository.PagoRepository,
		notaRepo repository.NotaCreditoRepository,
		productoRepo repository.ProductoRepository,
		pedidoRepo repository.PedidoRepository,
	) error) error
}

// Mailer puerto de envío de correos para recordatorios de cobranza.
// La infraestructura SMTP lo implementa; el contenido es texto plano.
type Mailer interface {
	Enviar(ctx context.Context, para, asunto, cuerpo string) error
}

// GeneradorPDF puerto para la representación imprimible de un documento.
type GeneradorPDF interface {
	Generar(doc *entity.DocumentoVenta, detalles []*entity.DetalleDocumento, productos map[string]*entity.Producto) ([]byte, error)
}
