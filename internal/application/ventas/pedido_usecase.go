package ventas

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// PedidoUseCase ciclo de vida de pedidos: creación en borrador, líneas,
// paso a pendiente, despacho y cancelación. La confirmación con descuento
// de stock vive en ConfirmarPedidoUseCase.
type PedidoUseCase struct {
	txRunner     TxRunner
	pedidoRepo   repository.PedidoRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	docRepo      repository.DocumentoRepository
	log          *logger.Logger
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(
	txRunner TxRunner,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	docRepo repository.DocumentoRepository,
	log *logger.Logger,
) *PedidoUseCase {
	return &PedidoUseCase{
		txRunner:     txRunner,
		pedidoRepo:   pedidoRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		docRepo:      docRepo,
		log:          log,
	}
}

// Crear crea un pedido en Borrador para un cliente, con líneas opcionales.
func (uc *PedidoUseCase) Crear(ctx context.Context, vendedorID string, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	cliente, err := uc.clienteRepo.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	pedido := &entity.Pedido{
		ID:                 uuid.New().String(),
		ClienteID:          in.ClienteID,
		UsuarioID:          &vendedorID,
		Estado:             entity.PedidoBorrador,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	var out *dto.PedidoResponse
	err = uc.txRunner.RunVentas(ctx, func(
		pedidoRepo repository.PedidoRepository,
		productoRepo repository.ProductoRepository,
		_ repository.DocumentoRepository,
		_ repository.PagoRepository,
		_ repository.CarritoRepository,
	) error {
		if err := pedidoRepo.Create(ctx, pedido); err != nil {
			return err
		}
		for _, linea := range in.Detalles {
			if _, err := agregarLinea(ctx, pedidoRepo, productoRepo, pedido, linea.ProductoID, linea.Cantidad); err != nil {
				return err
			}
		}
		detalles, err := pedidoRepo.GetDetalles(ctx, pedido.ID)
		if err != nil {
			return err
		}
		pedido.Total = entity.TotalDetalles(detalles)
		if err := pedidoRepo.UpdateTotal(ctx, pedido.ID, pedido.Total); err != nil {
			return err
		}
		out, err = uc.toPedidoResponse(ctx, pedido, detalles)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("pedido_id", pedido.ID).Str("cliente_id", pedido.ClienteID).Msg("pedido creado")
	return out, nil
}

// Get devuelve el pedido con sus líneas.
func (uc *PedidoUseCase) Get(ctx context.Context, id string) (*dto.PedidoResponse, error) {
	pedido, err := uc.pedidoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.pedidoRepo.GetDetalles(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toPedidoResponse(ctx, pedido, detalles)
}

// List lista pedidos paginados, con filtro opcional de estado.
func (uc *PedidoUseCase) List(ctx context.Context, in dto.ListPedidosRequest) ([]dto.PedidoResponse, error) {
	in.DefaultPage()
	list, err := uc.pedidoRepo.List(ctx, entity.EstadoPedido(in.Estado), in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// ListPorCliente lista los pedidos de un cliente.
func (uc *PedidoUseCase) ListPorCliente(ctx context.Context, clienteID string, page dto.PageRequest) ([]dto.PedidoResponse, error) {
	page.DefaultPage()
	list, err := uc.pedidoRepo.ListPorCliente(ctx, clienteID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// AgregarLinea agrega (o acumula) un producto al pedido y recalcula totales.
// Si el pedido ya tiene documento, las líneas del documento se resincronizan.
func (uc *PedidoUseCase) AgregarLinea(ctx context.Context, pedidoID string, in dto.AgregarDetalleRequest) (*dto.PedidoResponse, error) {
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.PedidoResponse
	err := uc.txRunner.RunVentas(ctx, func(
		pedidoRepo repository.PedidoRepository,
		productoRepo repository.ProductoRepository,
		documentoRepo repository.DocumentoRepository,
		_ repository.PagoRepository,
		_ repository.CarritoRepository,
	) error {
		pedido, err := pedidoEditable(ctx, pedidoRepo, pedidoID)
		if err != nil {
			return err
		}
		if _, err := agregarLinea(ctx, pedidoRepo, productoRepo, pedido, in.ProductoID, in.Cantidad); err != nil {
			return err
		}
		out, err = uc.recalcular(ctx, pedidoRepo, productoRepo, documentoRepo, pedido)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QuitarLinea elimina la línea del producto y recalcula totales.
func (uc *PedidoUseCase) QuitarLinea(ctx context.Context, pedidoID, productoID string) (*dto.PedidoResponse, error) {
	var out *dto.PedidoResponse
	err := uc.txRunner.RunVentas(ctx, func(
		pedidoRepo repository.PedidoRepository,
		productoRepo repository.ProductoRepository,
		documentoRepo repository.DocumentoRepository,
		_ repository.PagoRepository,
		_ repository.CarritoRepository,
	) error {
		pedido, err := pedidoEditable(ctx, pedidoRepo, pedidoID)
		if err != nil {
			return err
		}
		detalle, err := pedidoRepo.GetDetallePorProducto(ctx, pedidoID, productoID)
		if err != nil {
			return err
		}
		if detalle == nil {
			return domain.ErrNotFound
		}
		if err := pedidoRepo.DeleteDetalle(ctx, detalle.ID); err != nil {
			return err
		}
		out, err = uc.recalcular(ctx, pedidoRepo, productoRepo, documentoRepo, pedido)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EnviarAPendiente pasa el pedido de Borrador a Pendiente. Exige al menos
// una línea y resincroniza las líneas del documento si existe.
func (uc *PedidoUseCase) EnviarAPendiente(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	var out *dto.PedidoResponse
	err := uc.txRunner.RunVentas(ctx, func(
		pedidoRepo repository.PedidoRepository,
		productoRepo repository.ProductoRepository,
		documentoRepo repository.DocumentoRepository,
		_ repository.PagoRepository,
		_ repository.CarritoRepository,
	) error {
		pedido, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if pedido == nil {
			return domain.ErrNotFound
		}
		if !pedido.Estado.PuedeTransicionar(entity.PedidoPendiente) {
			return domain.ErrEstadoPedido
		}
		detalles, err := pedidoRepo.GetDetalles(ctx, pedidoID)
		if err != nil {
			return err
		}
		if len(detalles) == 0 {
			return domain.ErrPedidoSinLineas
		}
		if err := pedidoRepo.UpdateEstado(ctx, pedidoID, entity.PedidoPendiente); err != nil {
			return err
		}
		pedido.Estado = entity.PedidoPendiente
		out, err = uc.recalcular(ctx, pedidoRepo, productoRepo, documentoRepo, pedido)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarcarEnviado pasa el pedido de Procesando a Enviado.
func (uc *PedidoUseCase) MarcarEnviado(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	return uc.transicionar(ctx, pedidoID, entity.PedidoEnviado)
}

// Cancelar cancela un pedido en Borrador o Pendiente.
func (uc *PedidoUseCase) Cancelar(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	return uc.transicionar(ctx, pedidoID, entity.PedidoCancelado)
}

func (uc *PedidoUseCase) transicionar(ctx context.Context, pedidoID string, destino entity.EstadoPedido) (*dto.PedidoResponse, error) {
	pedido, err := uc.pedidoRepo.GetByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	if !pedido.Estado.PuedeTransicionar(destino) {
		return nil, domain.ErrEstadoPedido
	}
	if err := uc.pedidoRepo.UpdateEstado(ctx, pedidoID, destino); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("pedido_id", pedidoID).
		Str("desde", string(pedido.Estado)).
		Str("hacia", string(destino)).
		Msg("pedido transicionado")
	pedido.Estado = destino
	detalles, err := uc.pedidoRepo.GetDetalles(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	return uc.toPedidoResponse(ctx, pedido, detalles)
}

// pedidoEditable carga el pedido y verifica que admita cambios de líneas.
func pedidoEditable(ctx context.Context, pedidoRepo repository.PedidoRepository, pedidoID string) (*entity.Pedido, error) {
	pedido, err := pedidoRepo.GetByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	if pedido.Estado != entity.PedidoBorrador && pedido.Estado != entity.PedidoPendiente {
		return nil, domain.ErrEstadoPedido
	}
	return pedido, nil
}

// agregarLinea acumula cantidad sobre la línea existente del producto o crea
// una nueva con el precio de venta vigente.
func agregarLinea(
	ctx context.Context,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	pedido *entity.Pedido,
	productoID string,
	cantidad int,
) (*entity.DetallePedido, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := productoRepo.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil || !producto.Activo {
		return nil, domain.ErrNotFound
	}
	detalle, err := pedidoRepo.GetDetallePorProducto(ctx, pedido.ID, productoID)
	if err != nil {
		return nil, err
	}
	if detalle != nil {
		detalle.Cantidad += cantidad
		detalle.CalcularSubtotal()
		if err := pedidoRepo.UpdateDetalle(ctx, detalle); err != nil {
			return nil, err
		}
		return detalle, nil
	}
	detalle = &entity.DetallePedido{
		ID:                  uuid.New().String(),
		PedidoID:            pedido.ID,
		ProductoID:          productoID,
		Cantidad:            cantidad,
		PrecioUnitarioVenta: producto.PrecioUnitario,
	}
	detalle.CalcularSubtotal()
	if err := pedidoRepo.CreateDetalle(ctx, detalle); err != nil {
		return nil, err
	}
	return detalle, nil
}

// recalcular actualiza el total del pedido y, si existe documento asociado,
// resincroniza sus líneas y totales.
func (uc *PedidoUseCase) recalcular(
	ctx context.Context,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	documentoRepo repository.DocumentoRepository,
	pedido *entity.Pedido,
) (*dto.PedidoResponse, error) {
	detalles, err := pedidoRepo.GetDetalles(ctx, pedido.ID)
	if err != nil {
		return nil, err
	}
	pedido.Total = entity.TotalDetalles(detalles)
	if err := pedidoRepo.UpdateTotal(ctx, pedido.ID, pedido.Total); err != nil {
		return nil, err
	}
	productos, err := productosDe(ctx, productoRepo, detalles)
	if err != nil {
		return nil, err
	}
	doc, err := documentoRepo.GetByPedidoID(ctx, pedido.ID)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		if err := reemplazarDetallesDocumento(ctx, documentoRepo, doc.ID, detalles, productos); err != nil {
			return nil, err
		}
		neto, iva := domain.DesglosarIVA(pedido.Total)
		if err := documentoRepo.UpdateTotales(ctx, doc.ID, neto, iva, pedido.Total); err != nil {
			return nil, err
		}
	}
	return armarPedidoResponse(pedido, detalles, productos), nil
}

// productosDe carga los productos referenciados por un conjunto de líneas.
func productosDe(ctx context.Context, productoRepo repository.ProductoRepository, detalles []*entity.DetallePedido) (map[string]*entity.Producto, error) {
	productos := make(map[string]*entity.Producto, len(detalles))
	for _, d := range detalles {
		if _, ok := productos[d.ProductoID]; ok {
			continue
		}
		p, err := productoRepo.GetByID(ctx, d.ProductoID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			productos[d.ProductoID] = p
		}
	}
	return productos, nil
}

func (uc *PedidoUseCase) toPedidoResponse(ctx context.Context, pedido *entity.Pedido, detalles []*entity.DetallePedido) (*dto.PedidoResponse, error) {
	productos, err := productosDe(ctx, uc.productoRepo, detalles)
	if err != nil {
		return nil, err
	}
	return armarPedidoResponse(pedido, detalles, productos), nil
}

func (uc *PedidoUseCase) toResponses(list []*entity.Pedido) []dto.PedidoResponse {
	items := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *armarPedidoResponse(p, nil, nil))
	}
	return items
}

func armarPedidoResponse(pedido *entity.Pedido, detalles []*entity.DetallePedido, productos map[string]*entity.Producto) *dto.PedidoResponse {
	out := &dto.PedidoResponse{
		ID:            pedido.ID,
		ClienteID:     pedido.ClienteID,
		VendedorID:    pedido.UsuarioID,
		Estado:        string(pedido.Estado),
		Total:         pedido.Total,
		FechaCreacion: pedido.FechaCreacion,
	}
	for _, d := range detalles {
		nombre := ""
		if p, ok := productos[d.ProductoID]; ok {
			nombre = p.Nombre
		}
		out.Detalles = append(out.Detalles, dto.DetallePedidoResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			ProductoNombre: nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitarioVenta,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}
