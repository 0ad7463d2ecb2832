package facturacion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// Modalidades de pago al emitir.
const (
	ModalidadAhora  = "ahora"
	ModalidadPlazos = "plazos"
)

// EmitirDocumentoUseCase emite facturas y boletas a partir de un pedido.
// El folio es secuencial por tipo (max+1, piso 1000) y el desglose de IVA
// se calcula hacia atrás desde el total bruto.
type EmitirDocumentoUseCase struct {
	txRunner    TxRunner
	clienteRepo repository.ClienteRepository
	log         *logger.Logger
}

// NewEmitirDocumentoUseCase construye el caso de uso.
func NewEmitirDocumentoUseCase(txRunner TxRunner, clienteRepo repository.ClienteRepository, log *logger.Logger) *EmitirDocumentoUseCase {
	return &EmitirDocumentoUseCase{txRunner: txRunner, clienteRepo: clienteRepo, log: log}
}

// Emitir crea el documento del pedido. Modalidad "ahora" lo deja Pagada con
// un pago sintético al contado; "plazos" lo deja Emitida con vencimiento
// a los días indicados. Un pedido con documento previo se rechaza.
func (uc *EmitirDocumentoUseCase) Emitir(ctx context.Context, vendedorID string, in dto.EmitirDocumentoRequest) (*dto.DocumentoResponse, error) {
	tipo := entity.TipoDocumento(in.Tipo)
	if !tipo.Valido() {
		return nil, domain.ErrInvalidInput
	}
	switch in.Modalidad {
	case ModalidadAhora:
		if !entity.MedioPagoValido(in.MedioPago) {
			return nil, domain.ErrInvalidInput
		}
	case ModalidadPlazos:
		if tipo != entity.DocFactura {
			return nil, domain.ErrInvalidInput
		}
		if !entity.DiaPlazoValido(in.DiasPlazo) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var out *dto.DocumentoResponse
	err := uc.txRunner.RunTesoreria(ctx, func(
		documentoRepo repository.DocumentoRepository,
		pagoRepo repository.PagoRepository,
		_ repository.NotaCreditoRepository,
		productoRepo repository.ProductoRepository,
		pedidoRepo repository.PedidoRepository,
	) error {
		pedido, err := pedidoRepo.GetByID(ctx, in.PedidoID)
		if err != nil {
			return err
		}
		if pedido == nil {
			return domain.ErrNotFound
		}
		if pedido.Estado != entity.PedidoBorrador && pedido.Estado != entity.PedidoPendiente {
			return domain.ErrEstadoPedido
		}
		existente, err := documentoRepo.GetByPedidoID(ctx, pedido.ID)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrPedidoYaFacturado
		}
		detalles, err := pedidoRepo.GetDetalles(ctx, pedido.ID)
		if err != nil {
			return err
		}
		if len(detalles) == 0 {
			return domain.ErrPedidoSinLineas
		}
		cliente, err := uc.clienteRepo.GetByID(ctx, pedido.ClienteID)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.ErrNotFound
		}
		productos := make(map[string]*entity.Producto, len(detalles))
		for _, d := range detalles {
			if _, ok := productos[d.ProductoID]; ok {
				continue
			}
			p, err := productoRepo.GetByID(ctx, d.ProductoID)
			if err != nil {
				return err
			}
			if p != nil {
				productos[d.ProductoID] = p
			}
		}

		doc, err := emitir(ctx, documentoRepo, pedido, detalles, productos, cliente, tipo, &vendedorID, now)
		if err != nil {
			return err
		}

		switch in.Modalidad {
		case ModalidadAhora:
			// pagada de inmediato: vencimiento = emisión
			venc := now
			doc.FechaVencimiento = &venc
			doc.Estado = entity.DocPagada
			doc.MedioDePago = in.MedioPago
		case ModalidadPlazos:
			dias := in.DiasPlazo
			venc := now.AddDate(0, 0, dias)
			doc.DiasPlazo = &dias
			doc.FechaVencimiento = &venc
		}
		if err := documentoRepo.Create(ctx, doc); err != nil {
			return err
		}
		dets := ventas.ResincronizarDetalles(doc.ID, detalles, productos)
		for _, dd := range dets {
			if err := documentoRepo.CreateDetalle(ctx, dd); err != nil {
				return err
			}
		}
		// el pago sintético referencia al documento, por eso se inserta después
		if in.Modalidad == ModalidadAhora {
			if err := crearPagoCompleto(ctx, pagoRepo, doc, in.MedioPago, entity.RefPagoContado, now); err != nil {
				return err
			}
		}
		// emitir documento saca al pedido del borrador
		if pedido.Estado == entity.PedidoBorrador {
			if err := pedidoRepo.UpdateEstado(ctx, pedido.ID, entity.PedidoPendiente); err != nil {
				return err
			}
		}
		saldo := doc.Total
		if doc.Estado == entity.DocPagada {
			saldo = decimal.Zero
		}
		out = toDocumentoResponse(doc, dets, productos, saldo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("documento_id", out.ID).
		Str("tipo", out.Tipo).
		Int("folio", out.Folio).
		Str("modalidad", in.Modalidad).
		Msg("documento emitido")
	return out, nil
}

// EmitirContadoEnTx emite un documento pagado al contado usando los
// repositorios del caller. Lo usa el checkout del carrito.
func (uc *EmitirDocumentoUseCase) EmitirContadoEnTx(
	ctx context.Context,
	documentoRepo repository.DocumentoRepository,
	pagoRepo repository.PagoRepository,
	pedido *entity.Pedido,
	detalles []*entity.DetallePedido,
	productos map[string]*entity.Producto,
	cliente *entity.Cliente,
	op ventas.EmisionContado,
) (*entity.DocumentoVenta, error) {
	if !entity.MedioPagoValido(op.MedioPago) {
		return nil, domain.ErrInvalidInput
	}
	doc, err := emitir(ctx, documentoRepo, pedido, detalles, productos, cliente, op.Tipo, pedido.UsuarioID, op.Ahora)
	if err != nil {
		return nil, err
	}
	venc := op.Ahora
	doc.FechaVencimiento = &venc
	doc.Estado = entity.DocPagada
	doc.MedioDePago = op.MedioPago
	if err := documentoRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	for _, dd := range ventas.ResincronizarDetalles(doc.ID, detalles, productos) {
		if err := documentoRepo.CreateDetalle(ctx, dd); err != nil {
			return nil, err
		}
	}
	if err := crearPagoCompleto(ctx, pagoRepo, doc, op.MedioPago, op.Referencia, op.Ahora); err != nil {
		return nil, err
	}
	return doc, nil
}

// emitir arma el documento en memoria: folio, desglose de IVA y snapshot
// del cliente. No persiste.
func emitir(
	ctx context.Context,
	documentoRepo repository.DocumentoRepository,
	pedido *entity.Pedido,
	detalles []*entity.DetallePedido,
	productos map[string]*entity.Producto,
	cliente *entity.Cliente,
	tipo entity.TipoDocumento,
	vendedorID *string,
	now time.Time,
) (*entity.DocumentoVenta, error) {
	folio, err := siguienteFolio(ctx, documentoRepo, tipo)
	if err != nil {
		return nil, err
	}
	total := entity.TotalDetalles(detalles)
	neto, iva := domain.DesglosarIVA(total)
	return &entity.DocumentoVenta{
		ID:                 uuid.New().String(),
		TipoDocumento:      tipo,
		Folio:              folio,
		ClienteID:          cliente.ID,
		VendedorID:         vendedorID,
		PedidoID:           &pedido.ID,
		Neto:               neto,
		IVA:                iva,
		Total:              total,
		Estado:             entity.DocEmitida,
		FechaEmision:       now,
		RazonSocial:        cliente.RazonSocial,
		RUT:                cliente.RUT,
		Giro:               cliente.Giro,
		Direccion:          cliente.Direccion,
		Comuna:             cliente.Comuna,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}, nil
}

// siguienteFolio devuelve max+1 con piso FolioInicial. La unicidad
// (tipo, folio) en BD convierte una carrera en error de conflicto.
func siguienteFolio(ctx context.Context, documentoRepo repository.DocumentoRepository, tipo entity.TipoDocumento) (int, error) {
	max, err := documentoRepo.MaxFolio(ctx, tipo)
	if err != nil {
		return 0, err
	}
	folio := max + 1
	if folio < entity.FolioInicial {
		folio = entity.FolioInicial
	}
	return folio, nil
}

// crearPagoCompleto registra el pago sintético por el total del documento.
func crearPagoCompleto(ctx context.Context, pagoRepo repository.PagoRepository, doc *entity.DocumentoVenta, medioPago, referencia string, now time.Time) error {
	return pagoRepo.Create(ctx, &entity.Pago{
		ID:          uuid.New().String(),
		DocumentoID: doc.ID,
		FechaPago:   now,
		MontoPagado: doc.Total,
		MetodoPago:  medioPago,
		Referencia:  referencia,
	})
}
