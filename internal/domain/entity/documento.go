package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoDocumento tipo de documento tributario de venta.
type TipoDocumento string

const (
	DocFactura TipoDocumento = "Factura"
	DocBoleta  TipoDocumento = "Boleta"
)

// Valido reporta si el tipo es conocido.
func (t TipoDocumento) Valido() bool {
	return t == DocFactura || t == DocBoleta
}

// FolioInicial primer folio asignado cuando no existe ninguno para el tipo.
const FolioInicial = 1000

// EstadoDocumento estado de un documento de venta.
type EstadoDocumento string

const (
	DocEmitida         EstadoDocumento = "Emitida"
	DocPagada          EstadoDocumento = "Pagada"
	DocPagoParcial     EstadoDocumento = "Pago Parcial"
	DocAnulada         EstadoDocumento = "Anulada"
	DocDevuelta        EstadoDocumento = "Devuelta"
	DocDevueltaParcial EstadoDocumento = "Devuelta Parcial"
)

// Valido reporta si el estado es uno de los conocidos.
func (e EstadoDocumento) Valido() bool {
	switch e {
	case DocEmitida, DocPagada, DocPagoParcial, DocAnulada, DocDevuelta, DocDevueltaParcial:
		return true
	}
	return false
}

// Pendiente reporta si el documento aún admite pagos o recordatorios.
func (e EstadoDocumento) Pendiente() bool {
	return e == DocEmitida || e == DocPagoParcial
}

// Medios de pago aceptados.
const (
	MedioEfectivo      = "Efectivo"
	MedioDebito        = "Tarjeta de Débito"
	MedioCredito       = "Tarjeta de Crédito"
	MedioTransferencia = "Transferencia"
)

// MedioPagoValido reporta si el medio de pago es uno de los aceptados.
func MedioPagoValido(m string) bool {
	switch m {
	case MedioEfectivo, MedioDebito, MedioCredito, MedioTransferencia:
		return true
	}
	return false
}

// DiasPlazoPermitidos conjunto fijo de plazos para pago en cuotas.
var DiasPlazoPermitidos = []int{15, 30, 45, 60, 90}

// DiaPlazoValido reporta si los días de plazo pertenecen al conjunto permitido.
func DiaPlazoValido(dias int) bool {
	for _, d := range DiasPlazoPermitidos {
		if d == dias {
			return true
		}
	}
	return false
}

// DocumentoVenta documento tributario emitido a partir de un pedido (1:1 opcional).
// Folio es secuencial por tipo (max+1, piso FolioInicial, tolera huecos).
// Neto/IVA se calculan "hacia atrás" desde el total bruto (IVA incluido).
// Los campos RazonSocial..Comuna son un snapshot del cliente al momento de emitir.
type DocumentoVenta struct {
	ID                 string
	TipoDocumento      TipoDocumento
	Folio              int
	ClienteID          string
	VendedorID         *string
	PedidoID           *string
	Neto               decimal.Decimal
	IVA                decimal.Decimal
	Total              decimal.Decimal
	Estado             EstadoDocumento
	FechaEmision       time.Time
	FechaVencimiento   *time.Time
	DiasPlazo          *int
	MedioDePago        string
	RazonSocial        string
	RUT                string
	Giro               string
	Direccion          string
	Ciudad             string
	Comuna             string
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// EstaVencida reporta si el documento pendiente pasó su fecha de vencimiento.
func (d *DocumentoVenta) EstaVencida(hoy time.Time) bool {
	if d.FechaVencimiento == nil || !d.Estado.Pendiente() {
		return false
	}
	y1, m1, d1 := hoy.Date()
	y2, m2, d2 := d.FechaVencimiento.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).After(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}

// DetalleDocumento línea de un documento. CostoUnitarioVenta congela el costo
// del producto al momento de la venta para el reporte de rentabilidad.
type DetalleDocumento struct {
	ID                  string
	DocumentoID         string
	ProductoID          string
	Cantidad            int
	PrecioUnitarioVenta decimal.Decimal
	Subtotal            decimal.Decimal
	CostoUnitarioVenta  decimal.Decimal
}

// CalcularSubtotal fija Subtotal desde cantidad y precio.
func (d *DetalleDocumento) CalcularSubtotal() {
	d.Subtotal = d.PrecioUnitarioVenta.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
