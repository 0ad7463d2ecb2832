package ventas

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

// CarritoUseCase carrito de compras del usuario cliente y su checkout.
// El checkout convierte el carrito en un pedido confirmado con boleta
// pagada, todo en una transacción.
type CarritoUseCase struct {
	txRunner     TxRunner
	emisor       EmisorDocumentos
	carritoRepo  repository.CarritoRepository
	productoRepo repository.ProductoRepository
	clienteRepo  repository.ClienteRepository
	log          *logger.Logger
}

// NewCarritoUseCase construye el caso de uso.
func NewCarritoUseCase(
	txRunner TxRunner,
	emisor EmisorDocumentos,
	carritoRepo repository.CarritoRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	log *logger.Logger,
) *CarritoUseCase {
	return &CarritoUseCase{
		txRunner:     txRunner,
		emisor:       emisor,
		carritoRepo:  carritoRepo,
		productoRepo: productoRepo,
		clienteRepo:  clienteRepo,
		log:          log,
	}
}

// Ver devuelve el carrito del usuario con datos de producto y total.
func (uc *CarritoUseCase) Ver(ctx context.Context, usuarioID string) (*dto.CarritoResponse, error) {
	carrito, err := uc.carritoRepo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		carrito = &entity.Carrito{UsuarioID: usuarioID}
	}
	return uc.toCarritoResponse(ctx, carrito)
}

// Agregar suma cantidad de un producto al carrito. Verifica stock como
// cortesía: la validación definitiva ocurre en el checkout.
func (uc *CarritoUseCase) Agregar(ctx context.Context, usuarioID string, in dto.CarritoItemRequest) (*dto.CarritoResponse, error) {
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(ctx, in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil || !producto.Activo {
		return nil, domain.ErrNotFound
	}
	carrito, err := uc.carritoRepo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		carrito = &entity.Carrito{UsuarioID: usuarioID}
	}
	if carrito.CantidadDe(in.ProductoID)+in.Cantidad > producto.Stock {
		return nil, domain.ErrStockInsuficiente
	}
	carrito.Agregar(in.ProductoID, in.Cantidad)
	carrito.FechaActualizacion = time.Now()
	if err := uc.carritoRepo.Save(ctx, carrito); err != nil {
		return nil, err
	}
	return uc.toCarritoResponse(ctx, carrito)
}

// Quitar elimina un producto del carrito.
func (uc *CarritoUseCase) Quitar(ctx context.Context, usuarioID, productoID string) (*dto.CarritoResponse, error) {
	carrito, err := uc.carritoRepo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if carrito == nil || carrito.CantidadDe(productoID) == 0 {
		return nil, domain.ErrNotFound
	}
	carrito.Quitar(productoID)
	carrito.FechaActualizacion = time.Now()
	if err := uc.carritoRepo.Save(ctx, carrito); err != nil {
		return nil, err
	}
	return uc.toCarritoResponse(ctx, carrito)
}

// Vaciar elimina el carrito completo del usuario.
func (uc *CarritoUseCase) Vaciar(ctx context.Context, usuarioID string) error {
	return uc.carritoRepo.Delete(ctx, usuarioID)
}

// Checkout convierte el carrito en un pedido confirmado: crea el pedido con
// las líneas del carrito a precio vigente, descuenta stock (todo o nada),
// emite la boleta pagada con su pago "Pago E-Commerce" y vacía el carrito.
// Todo dentro de una transacción: cualquier falla revierte el conjunto.
func (uc *CarritoUseCase) Checkout(ctx context.Context, usuarioID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if !entity.MedioPagoValido(in.MedioPago) {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	carrito, err := uc.carritoRepo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if carrito == nil || carrito.Vacio() {
		return nil, domain.ErrPedidoSinLineas
	}

	now := time.Now()
	var out *dto.CheckoutResponse
	err = uc.txRunner.RunVentas(ctx, func(
		pedidoRepo repository.PedidoRepository,
		productoRepo repository.ProductoRepository,
		documentoRepo repository.DocumentoRepository,
		pagoRepo repository.PagoRepository,
		carritoRepo repository.CarritoRepository,
	) error {
		pedido := &entity.Pedido{
			ID:                 uuid.New().String(),
			ClienteID:          cliente.ID,
			UsuarioID:          &usuarioID,
			Estado:             entity.PedidoPendiente,
			FechaCreacion:      now,
			FechaActualizacion: now,
		}
		if err := pedidoRepo.Create(ctx, pedido); err != nil {
			return err
		}
		detalles := make([]*entity.DetallePedido, 0, len(carrito.Items))
		for _, item := range carrito.Items {
			d, err := agregarLinea(ctx, pedidoRepo, productoRepo, pedido, item.ProductoID, item.Cantidad)
			if err != nil {
				return err
			}
			detalles = append(detalles, d)
		}
		pedido.Total = entity.TotalDetalles(detalles)
		if err := pedidoRepo.UpdateTotal(ctx, pedido.ID, pedido.Total); err != nil {
			return err
		}

		productos, err := confirmarStock(ctx, productoRepo, detalles)
		if err != nil {
			return err
		}
		if err := pedidoRepo.UpdateEstado(ctx, pedido.ID, entity.PedidoProcesando); err != nil {
			return err
		}
		pedido.Estado = entity.PedidoProcesando

		doc, err := uc.emisor.EmitirContadoEnTx(ctx, documentoRepo, pagoRepo, pedido, detalles, productos, cliente, EmisionContado{
			Tipo:       entity.DocBoleta,
			MedioPago:  in.MedioPago,
			Referencia: entity.RefPagoEcommerce,
			Ahora:      now,
		})
		if err != nil {
			return err
		}
		if err := carritoRepo.Delete(ctx, usuarioID); err != nil {
			return err
		}
		out = &dto.CheckoutResponse{
			Pedido:    *armarPedidoResponse(pedido, detalles, productos),
			Documento: *armarDocumentoResponse(doc, nil, nil, doc.Total),
		}
		out.Documento.SaldoPendiente = decimal.Zero
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("usuario_id", usuarioID).
		Str("pedido_id", out.Pedido.ID).
		Str("total", out.Pedido.Total.String()).
		Msg("checkout completado")
	return out, nil
}

func (uc *CarritoUseCase) toCarritoResponse(ctx context.Context, carrito *entity.Carrito) (*dto.CarritoResponse, error) {
	out := &dto.CarritoResponse{Items: []dto.CarritoItemResponse{}, Total: decimal.Zero}
	for _, item := range carrito.Items {
		producto, err := uc.productoRepo.GetByID(ctx, item.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			continue
		}
		subtotal := producto.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		out.Items = append(out.Items, dto.CarritoItemResponse{
			ProductoID:     producto.ID,
			ProductoNombre: producto.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: producto.PrecioUnitario,
			Subtotal:       subtotal,
		})
		out.Total = out.Total.Add(subtotal)
	}
	return out, nil
}
