package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoNotaCredito estado de una nota de crédito.
type EstadoNotaCredito string

const (
	NotaEmitida  EstadoNotaCredito = "Emitida"
	NotaAplicada EstadoNotaCredito = "Aplicada"
)

// PlazoNotaCreditoDias ventana desde la emisión de la factura dentro de la
// cual se puede emitir una nota de crédito.
const PlazoNotaCreditoDias = 30

// NotaCredito reversa total o parcialmente una factura.
// Monto = suma de los subtotales de sus detalles.
type NotaCredito struct {
	ID           string
	FacturaID    string
	Folio        int
	FechaEmision time.Time
	UsuarioID    *string
	Motivo       string
	Monto        decimal.Decimal
	Estado       EstadoNotaCredito
	CreadoEn     time.Time
}

// DetalleNotaCredito línea de devolución: la cantidad devuelta reingresa al
// stock del producto y nunca excede la cantidad originalmente facturada.
type DetalleNotaCredito struct {
	ID             string
	NotaID         string
	ProductoID     *string
	Descripcion    string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// CalcularSubtotal fija Subtotal desde cantidad y precio.
func (d *DetalleNotaCredito) CalcularSubtotal() {
	d.Subtotal = d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
