package facturacion

import (
	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
)

func toDocumentoResponse(
	doc *entity.DocumentoVenta,
	detalles []*entity.DetalleDocumento,
	productos map[string]*entity.Producto,
	saldo decimal.Decimal,
) *dto.DocumentoResponse {
	pedidoID := ""
	if doc.PedidoID != nil {
		pedidoID = *doc.PedidoID
	}
	out := &dto.DocumentoResponse{
		ID:               doc.ID,
		Tipo:             string(doc.TipoDocumento),
		Folio:            doc.Folio,
		PedidoID:         pedidoID,
		ClienteID:        doc.ClienteID,
		RazonSocial:      doc.RazonSocial,
		RUT:              rut.Formatear(doc.RUT),
		Giro:             doc.Giro,
		Direccion:        doc.Direccion,
		Comuna:           doc.Comuna,
		Estado:           string(doc.Estado),
		Neto:             doc.Neto,
		IVA:              doc.IVA,
		Total:            doc.Total,
		SaldoPendiente:   saldo,
		DiasPlazo:        doc.DiasPlazo,
		FechaEmision:     doc.FechaEmision,
		FechaVencimiento: doc.FechaVencimiento,
	}
	for _, d := range detalles {
		nombre := ""
		if p, ok := productos[d.ProductoID]; ok {
			nombre = p.Nombre
		}
		out.Detalles = append(out.Detalles, dto.DetalleDocumentoResponse{
			ProductoID:     d.ProductoID,
			ProductoNombre: nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitarioVenta,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}

func toPagoResponse(p *entity.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:          p.ID,
		DocumentoID: p.DocumentoID,
		Monto:       p.MontoPagado,
		MedioPago:   p.MetodoPago,
		Referencia:  p.Referencia,
		Fecha:       p.FechaPago,
	}
}
