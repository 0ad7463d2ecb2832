package domain

import "github.com/shopspring/decimal"

// TasaIVA tasa del impuesto al valor agregado (19%).
var TasaIVA = decimal.NewFromFloat(0.19)

// DesglosarIVA separa un total bruto (IVA incluido) en neto e IVA.
// El neto se calcula "hacia atrás" y se redondea a 2 decimales;
// el IVA es la diferencia exacta, de modo que neto + iva == total.
func DesglosarIVA(total decimal.Decimal) (neto, iva decimal.Decimal) {
	divisor := decimal.NewFromInt(1).Add(TasaIVA)
	neto = total.Div(divisor).Round(2)
	iva = total.Sub(neto)
	return neto, iva
}
