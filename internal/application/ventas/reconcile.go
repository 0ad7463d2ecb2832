package ventas

import (
	"context"

	"github.com/google/uuid"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

// ResincronizarDetalles construye las líneas de documento a partir de las
// líneas del pedido, congelando el costo unitario de cada producto al
// momento de la sincronización. Es una función pura e idempotente: el
// resultado depende solo de sus entradas, y el caller reemplaza con él
// las líneas anteriores del documento.
func ResincronizarDetalles(documentoID string, detalles []*entity.DetallePedido, productos map[string]*entity.Producto) []*entity.DetalleDocumento {
	out := make([]*entity.DetalleDocumento, 0, len(detalles))
	for _, d := range detalles {
		dd := &entity.DetalleDocumento{
			ID:                  uuid.New().String(),
			DocumentoID:         documentoID,
			ProductoID:          d.ProductoID,
			Cantidad:            d.Cantidad,
			PrecioUnitarioVenta: d.PrecioUnitarioVenta,
		}
		if p, ok := productos[d.ProductoID]; ok {
			dd.CostoUnitarioVenta = p.CostoUnitario
		}
		dd.CalcularSubtotal()
		out = append(out, dd)
	}
	return out
}

// reemplazarDetallesDocumento borra las líneas actuales del documento y las
// recrea desde las del pedido, dentro de la transacción del caller.
func reemplazarDetallesDocumento(
	ctx context.Context,
	documentoRepo repository.DocumentoRepository,
	documentoID string,
	detalles []*entity.DetallePedido,
	productos map[string]*entity.Producto,
) error {
	if err := documentoRepo.DeleteDetalles(ctx, documentoID); err != nil {
		return err
	}
	for _, dd := range ResincronizarDetalles(documentoID, detalles, productos) {
		if err := documentoRepo.CreateDetalle(ctx, dd); err != nil {
			return err
		}
	}
	return nil
}
