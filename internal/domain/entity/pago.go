package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referencias sintéticas de pagos generados por el sistema.
const (
	RefPagoEcommerce = "Pago E-Commerce"
	RefPagoContado   = "Pago Vendedor Contado"
)

// Pago abono registrado contra el saldo de un documento.
// Un pago es inmutable una vez creado.
type Pago struct {
	ID            string
	DocumentoID   string
	FechaPago     time.Time
	MontoPagado   decimal.Decimal
	MetodoPago    string
	Referencia    string
	Observaciones string
}
