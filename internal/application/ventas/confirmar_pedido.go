package ventas

import (
	"context"
	"fmt"
	"sort"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// FaltaStockError error de confirmación que nombra todos los productos sin
// stock suficiente, no solo el primero. Envuelve ErrStockInsuficiente.
type FaltaStockError struct {
	Faltantes []dto.FaltanteStock
}

func (e *FaltaStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %d producto(s)", len(e.Faltantes))
}

// Unwrap permite errors.Is(err, domain.ErrStockInsuficiente).
func (e *FaltaStockError) Unwrap() error {
	return domain.ErrStockInsuficiente
}

// ConfirmarPedidoUseCase confirma un pedido pendiente descontando stock en
// una sola transacción. Es todo o nada: o todas las líneas descuentan o
// ninguna lo hace.
type ConfirmarPedidoUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewConfirmarPedidoUseCase construye el caso de uso.
func NewConfirmarPedidoUseCase(txRunner TxRunner, log *logger.Logger) *ConfirmarPedidoUseCase {
	return &ConfirmarPedidoUseCase{txRunner: txRunner, log: log}
}

// Confirmar descuenta el stock de todas las líneas y pasa el pedido de
// Pendiente a Procesando. Una segunda confirmación del mismo pedido se
// rechaza por el guard de estado. Si el pedido tiene documento asociado,
// las líneas del documento se resincronizan al cierre.
func (uc *ConfirmarPedidoUseCase) Confirmar(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
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
		if pedido.Estado != entity.PedidoPendiente {
			return domain.ErrEstadoPedido
		}
		detalles, err := pedidoRepo.GetDetalles(ctx, pedidoID)
		if err != nil {
			return err
		}
		if len(detalles) == 0 {
			return domain.ErrPedidoSinLineas
		}
		productos, err := confirmarStock(ctx, productoRepo, detalles)
		if err != nil {
			return err
		}
		if err := pedidoRepo.UpdateEstado(ctx, pedidoID, entity.PedidoProcesando); err != nil {
			return err
		}
		pedido.Estado = entity.PedidoProcesando
		doc, err := documentoRepo.GetByPedidoID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if doc != nil {
			if err := reemplazarDetallesDocumento(ctx, documentoRepo, doc.ID, detalles, productos); err != nil {
				return err
			}
		}
		out = armarPedidoResponse(pedido, detalles, productos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("pedido_id", pedidoID).Msg("pedido confirmado, stock descontado")
	return out, nil
}

// confirmarStock bloquea cada producto (FOR UPDATE, en orden estable para
// evitar deadlocks), junta TODOS los faltantes y, solo si no hay ninguno,
// aplica el decremento condicional por línea. Un decremento que no afecta
// filas después de pasar la verificación es una inconsistencia fatal.
func confirmarStock(
	ctx context.Context,
	productoRepo repository.ProductoRepository,
	detalles []*entity.DetallePedido,
) (map[string]*entity.Producto, error) {
	ordenados := make([]*entity.DetallePedido, len(detalles))
	copy(ordenados, detalles)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].ProductoID < ordenados[j].ProductoID })

	productos := make(map[string]*entity.Producto, len(ordenados))
	var faltantes []dto.FaltanteStock
	for _, d := range ordenados {
		p, err := productoRepo.GetForUpdate(ctx, d.ProductoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		productos[p.ID] = p
		if p.Stock < d.Cantidad {
			faltantes = append(faltantes, dto.FaltanteStock{
				ProductoID:     p.ID,
				ProductoNombre: p.Nombre,
				Solicitado:     d.Cantidad,
				Disponible:     p.Stock,
			})
		}
	}
	if len(faltantes) > 0 {
		return nil, &FaltaStockError{Faltantes: faltantes}
	}
	for _, d := range ordenados {
		ok, err := productoRepo.DescontarStock(ctx, d.ProductoID, d.Cantidad)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrConflictoStock
		}
	}
	return productos, nil
}
