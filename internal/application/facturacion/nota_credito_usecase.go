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

// NotaCreditoUseCase reversa total o parcial de facturas. La nota se crea,
// repone stock y queda Aplicada dentro de la misma transacción.
type NotaCreditoUseCase struct {
	txRunner     TxRunner
	notaRepo     repository.NotaCreditoRepository
	productoRepo repository.ProductoRepository
	log          *logger.Logger
}

// NewNotaCreditoUseCase construye el caso de uso.
func NewNotaCreditoUseCase(txRunner TxRunner, notaRepo repository.NotaCreditoRepository, productoRepo repository.ProductoRepository, log *logger.Logger) *NotaCreditoUseCase {
	return &NotaCreditoUseCase{txRunner: txRunner, notaRepo: notaRepo, productoRepo: productoRepo, log: log}
}

// Emitir crea una nota de crédito sobre una factura: valida ventana de 30
// días, cantidades contra lo facturado y monto positivo; repone stock por
// línea (mejor esfuerzo) y deja la factura Devuelta o Devuelta Parcial.
func (uc *NotaCreditoUseCase) Emitir(ctx context.Context, usuarioID string, facturaID string, in dto.EmitirNotaCreditoRequest) (*dto.NotaCreditoResponse, error) {
	if in.Motivo == "" || len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var out *dto.NotaCreditoResponse
	err := uc.txRunner.RunTesoreria(ctx, func(
		documentoRepo repository.DocumentoRepository,
		_ repository.PagoRepository,
		notaRepo repository.NotaCreditoRepository,
		productoRepo repository.ProductoRepository,
		_ repository.PedidoRepository,
	) error {
		factura, err := documentoRepo.GetByID(ctx, facturaID)
		if err != nil {
			return err
		}
		if factura == nil {
			return domain.ErrNotFound
		}
		if factura.TipoDocumento != entity.DocFactura {
			return domain.ErrInvalidInput
		}
		if factura.Estado == entity.DocAnulada {
			return domain.ErrEstadoDocumento
		}
		if now.Sub(factura.FechaEmision) > entity.PlazoNotaCreditoDias*24*time.Hour {
			return domain.ErrPlazoNotaCredito
		}

		facturado, err := documentoRepo.GetDetalles(ctx, facturaID)
		if err != nil {
			return err
		}
		porProducto := make(map[string]*entity.DetalleDocumento, len(facturado))
		for _, d := range facturado {
			porProducto[d.ProductoID] = d
		}

		// validar todas las líneas antes de escribir nada
		monto := decimal.Zero
		lineas := make([]*entity.DetalleNotaCredito, 0, len(in.Detalles))
		for _, linea := range in.Detalles {
			original, ok := porProducto[linea.ProductoID]
			if !ok || linea.Cantidad <= 0 || linea.Cantidad > original.Cantidad {
				return domain.ErrCantidadDevuelta
			}
			productoID := linea.ProductoID
			d := &entity.DetalleNotaCredito{
				ID:             uuid.New().String(),
				ProductoID:     &productoID,
				Cantidad:       linea.Cantidad,
				PrecioUnitario: original.PrecioUnitarioVenta,
			}
			d.CalcularSubtotal()
			monto = monto.Add(d.Subtotal)
			lineas = append(lineas, d)
		}
		if !monto.GreaterThan(decimal.Zero) {
			return domain.ErrNotaSinMonto
		}

		folio, err := siguienteFolioNota(ctx, notaRepo)
		if err != nil {
			return err
		}
		nota := &entity.NotaCredito{
			ID:           uuid.New().String(),
			FacturaID:    factura.ID,
			Folio:        folio,
			FechaEmision: now,
			UsuarioID:    &usuarioID,
			Motivo:       in.Motivo,
			Monto:        monto,
			Estado:       entity.NotaEmitida,
			CreadoEn:     now,
		}
		if err := notaRepo.Create(ctx, nota); err != nil {
			return err
		}
		for _, d := range lineas {
			d.NotaID = nota.ID
			if err := notaRepo.CreateDetalle(ctx, d); err != nil {
				return err
			}
			// la reposición de stock es mejor esfuerzo: se registra, no aborta
			if err := productoRepo.ReponerStock(ctx, *d.ProductoID, d.Cantidad); err != nil {
				uc.log.Error().
					Err(err).
					Str("producto_id", *d.ProductoID).
					Int("cantidad", d.Cantidad).
					Msg("no se pudo reponer stock por nota de crédito")
			}
		}

		estadoFactura := entity.DocDevueltaParcial
		if monto.GreaterThanOrEqual(factura.Total) {
			estadoFactura = entity.DocDevuelta
		}
		if err := documentoRepo.UpdateEstado(ctx, factura.ID, estadoFactura); err != nil {
			return err
		}
		if err := notaRepo.UpdateEstado(ctx, nota.ID, entity.NotaAplicada); err != nil {
			return err
		}
		nota.Estado = entity.NotaAplicada
		out = uc.toNotaResponse(ctx, nota, lineas, string(estadoFactura))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("factura_id", facturaID).
		Int("folio", out.Folio).
		Str("monto", out.Total.String()).
		Msg("nota de crédito aplicada")
	return out, nil
}

// Get devuelve una nota de crédito con sus líneas.
func (uc *NotaCreditoUseCase) Get(ctx context.Context, id string) (*dto.NotaCreditoResponse, error) {
	nota, err := uc.notaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotFound
	}
	lineas, err := uc.notaRepo.GetDetalles(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toNotaResponse(ctx, nota, lineas, ""), nil
}

// ListByFactura lista las notas emitidas sobre una factura.
func (uc *NotaCreditoUseCase) ListByFactura(ctx context.Context, facturaID string) ([]dto.NotaCreditoResponse, error) {
	notas, err := uc.notaRepo.ListByFactura(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotaCreditoResponse, 0, len(notas))
	for _, n := range notas {
		items = append(items, *uc.toNotaResponse(ctx, n, nil, ""))
	}
	return items, nil
}

func siguienteFolioNota(ctx context.Context, notaRepo repository.NotaCreditoRepository) (int, error) {
	max, err := notaRepo.MaxFolio(ctx)
	if err != nil {
		return 0, err
	}
	folio := max + 1
	if folio < entity.FolioInicial {
		folio = entity.FolioInicial
	}
	return folio, nil
}

func (uc *NotaCreditoUseCase) toNotaResponse(ctx context.Context, nota *entity.NotaCredito, lineas []*entity.DetalleNotaCredito, estadoFactura string) *dto.NotaCreditoResponse {
	neto, iva := domain.DesglosarIVA(nota.Monto)
	out := &dto.NotaCreditoResponse{
		ID:              nota.ID,
		Folio:           nota.Folio,
		DocumentoID:     nota.FacturaID,
		Motivo:          nota.Motivo,
		Estado:          string(nota.Estado),
		Neto:            neto,
		IVA:             iva,
		Total:           nota.Monto,
		EstadoDocumento: estadoFactura,
		FechaEmision:    nota.FechaEmision,
	}
	for _, d := range lineas {
		nombre := d.Descripcion
		productoID := ""
		if d.ProductoID != nil {
			productoID = *d.ProductoID
			if nombre == "" {
				if p, err := uc.productoRepo.GetByID(ctx, productoID); err == nil && p != nil {
					nombre = p.Nombre
				}
			}
		}
		out.Detalles = append(out.Detalles, dto.DetalleNotaCreditoResponse{
			ProductoID:     productoID,
			ProductoNombre: nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}
