package facturacion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// PagosUseCase tesorería de documentos: consulta con saldo, registro de
// pagos y anulación. Los pagos son inmutables.
type PagosUseCase struct {
	txRunner     TxRunner
	docRepo      repository.DocumentoRepository
	pagoRepo     repository.PagoRepository
	productoRepo repository.ProductoRepository
	log          *logger.Logger
}

// NewPagosUseCase construye el caso de uso.
func NewPagosUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentoRepository,
	pagoRepo repository.PagoRepository,
	productoRepo repository.ProductoRepository,
	log *logger.Logger,
) *PagosUseCase {
	return &PagosUseCase{txRunner: txRunner, docRepo: docRepo, pagoRepo: pagoRepo, productoRepo: productoRepo, log: log}
}

// Get devuelve el documento con detalles y saldo pendiente.
func (uc *PagosUseCase) Get(ctx context.Context, id string) (*dto.DocumentoResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.docRepo.GetDetalles(ctx, id)
	if err != nil {
		return nil, err
	}
	productos := make(map[string]*entity.Producto, len(detalles))
	for _, d := range detalles {
		p, err := uc.productoRepo.GetByID(ctx, d.ProductoID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			productos[d.ProductoID] = p
		}
	}
	saldo := uc.saldoPendiente(ctx, doc)
	return toDocumentoResponse(doc, detalles, productos, saldo), nil
}

// List lista documentos con filtro opcional de tipo y estado.
func (uc *PagosUseCase) List(ctx context.Context, in dto.ListDocumentosRequest) ([]dto.DocumentoResponse, error) {
	in.DefaultPage()
	list, err := uc.docRepo.List(ctx, entity.TipoDocumento(in.Tipo), entity.EstadoDocumento(in.Estado), in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentoResponse, 0, len(list))
	for _, doc := range list {
		items = append(items, *toDocumentoResponse(doc, nil, nil, uc.saldoPendiente(ctx, doc)))
	}
	return items, nil
}

// ListPagos lista los pagos registrados contra un documento.
func (uc *PagosUseCase) ListPagos(ctx context.Context, documentoID string) ([]dto.PagoResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	pagos, err := uc.pagoRepo.ListByDocumento(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PagoResponse, 0, len(pagos))
	for _, p := range pagos {
		items = append(items, *toPagoResponse(p))
	}
	return items, nil
}

// RegistrarPago abona contra el saldo del documento. Rechaza montos no
// positivos o mayores al saldo; al cerrar la transacción el estado queda
// Pagada (saldo cero) o Pago Parcial.
func (uc *PagosUseCase) RegistrarPago(ctx context.Context, documentoID string, in dto.RegistrarPagoRequest) (*dto.RegistrarPagoResponse, error) {
	if !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.MedioPagoValido(in.MedioPago) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var out *dto.RegistrarPagoResponse
	err := uc.txRunner.RunTesoreria(ctx, func(
		documentoRepo repository.DocumentoRepository,
		pagoRepo repository.PagoRepository,
		_ repository.NotaCreditoRepository,
		_ repository.ProductoRepository,
		_ repository.PedidoRepository,
	) error {
		doc, err := documentoRepo.GetByID(ctx, documentoID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Estado == entity.DocPagada {
			return domain.ErrDocumentoPagado
		}
		if !doc.Estado.Pendiente() {
			return domain.ErrEstadoDocumento
		}
		saldo := saldoDe(ctx, pagoRepo, doc)
		if in.Monto.GreaterThan(saldo) {
			return domain.ErrPagoExcedeSaldo
		}
		pago := &entity.Pago{
			ID:          uuid.New().String(),
			DocumentoID: doc.ID,
			FechaPago:   now,
			MontoPagado: in.Monto,
			MetodoPago:  in.MedioPago,
			Referencia:  in.Referencia,
		}
		if err := pagoRepo.Create(ctx, pago); err != nil {
			return err
		}
		nuevoSaldo := saldo.Sub(in.Monto)
		estado := entity.DocPagoParcial
		if !nuevoSaldo.GreaterThan(decimal.Zero) {
			estado = entity.DocPagada
			nuevoSaldo = decimal.Zero
		}
		if err := documentoRepo.UpdateEstado(ctx, doc.ID, estado); err != nil {
			return err
		}
		out = &dto.RegistrarPagoResponse{
			Pago:            *toPagoResponse(pago),
			EstadoDocumento: string(estado),
			SaldoPendiente:  nuevoSaldo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("documento_id", documentoID).
		Str("monto", in.Monto.String()).
		Str("estado", out.EstadoDocumento).
		Msg("pago registrado")
	return out, nil
}

// Anular anula un documento no pagado. La verificación y el cambio de
// estado corren en la misma transacción que el resto de la tesorería para
// que un pago concurrente no deje anulado un documento recién pagado.
func (uc *PagosUseCase) Anular(ctx context.Context, documentoID string) (*dto.DocumentoResponse, error) {
	var out *dto.DocumentoResponse
	err := uc.txRunner.RunTesoreria(ctx, func(
		documentoRepo repository.DocumentoRepository,
		_ repository.PagoRepository,
		_ repository.NotaCreditoRepository,
		_ repository.ProductoRepository,
		_ repository.PedidoRepository,
	) error {
		doc, err := documentoRepo.GetByID(ctx, documentoID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Estado == entity.DocPagada {
			return domain.ErrDocumentoPagado
		}
		if err := documentoRepo.UpdateEstado(ctx, documentoID, entity.DocAnulada); err != nil {
			return err
		}
		doc.Estado = entity.DocAnulada
		out = toDocumentoResponse(doc, nil, nil, decimal.Zero)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Warn().Str("documento_id", documentoID).Msg("documento anulado")
	return out, nil
}

// saldoPendiente calcula total − Σ pagos con piso cero. Si la agregación
// falla se asume el total completo como pendiente.
func (uc *PagosUseCase) saldoPendiente(ctx context.Context, doc *entity.DocumentoVenta) decimal.Decimal {
	return saldoDe(ctx, uc.pagoRepo, doc)
}

func saldoDe(ctx context.Context, pagoRepo repository.PagoRepository, doc *entity.DocumentoVenta) decimal.Decimal {
	pagado, err := pagoRepo.SumByDocumento(ctx, doc.ID)
	if err != nil {
		return doc.Total
	}
	saldo := doc.Total.Sub(pagado)
	if saldo.IsNegative() {
		return decimal.Zero
	}
	return saldo
}
