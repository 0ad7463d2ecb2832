package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto del catálogo.
// Stock se descuenta al confirmar pedidos y se reingresa por notas de crédito;
// después de cualquier operación confirmada Stock nunca queda negativo.
type Producto struct {
	ID                 string
	Codigo             string // código único (SKU)
	Nombre             string
	Descripcion        string
	PrecioUnitario     decimal.Decimal // precio de venta (IVA incluido)
	CostoUnitario      decimal.Decimal
	Stock              int
	StockMinimo        int
	ProveedorID        *string
	AfectoIVA          bool
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// TieneStockBajo indica si el stock está en o bajo el mínimo configurado.
func (p *Producto) TieneStockBajo() bool {
	return p.StockMinimo > 0 && p.Stock <= p.StockMinimo
}

// MargenGanancia calcula el margen porcentual sobre el costo.
func (p *Producto) MargenGanancia() decimal.Decimal {
	if !p.CostoUnitario.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	cien := decimal.NewFromInt(100)
	return p.PrecioUnitario.Sub(p.CostoUnitario).Div(p.CostoUnitario).Mul(cien)
}
