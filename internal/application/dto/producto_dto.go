package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest body para POST /api/productos.
type CreateProductoRequest struct {
	Codigo         string          `json:"codigo" validate:"required,min=1,max=50"`
	Nombre         string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion    string          `json:"descripcion" validate:"max=2000"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
	Stock          int             `json:"stock" validate:"min=0"`
	StockMinimo    int             `json:"stock_minimo" validate:"min=0"`
	ProveedorID    *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	AfectoIVA      *bool           `json:"afecto_iva"`
}

// UpdateProductoRequest body para PUT /api/productos/:id. Campos opcionales.
type UpdateProductoRequest struct {
	Nombre         *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion    *string          `json:"descripcion" validate:"omitempty,max=2000"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  *decimal.Decimal `json:"costo_unitario"`
	Stock          *int             `json:"stock" validate:"omitempty,min=0"`
	StockMinimo    *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	ProveedorID    *string          `json:"proveedor_id" validate:"omitempty,uuid"`
	AfectoIVA      *bool            `json:"afecto_iva"`
	Activo         *bool            `json:"activo"`
}

// ListProductosRequest query params para GET /api/productos.
type ListProductosRequest struct {
	PageRequest
	Buscar        string `query:"buscar"`
	SoloActivos   bool   `query:"solo_activos"`
	SoloBajoStock bool   `query:"solo_bajo_stock"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID             string          `json:"id"`
	Codigo         string          `json:"codigo"`
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion,omitempty"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
	Stock          int             `json:"stock"`
	StockMinimo    int             `json:"stock_minimo"`
	ProveedorID    *string         `json:"proveedor_id,omitempty"`
	AfectoIVA      bool            `json:"afecto_iva"`
	Activo         bool            `json:"activo"`
	StockBajo      bool            `json:"stock_bajo"`
	FechaCreacion  time.Time       `json:"fecha_creacion"`
}

// ActualizarCostoItem una fila de actualización masiva de costos.
type ActualizarCostoItem struct {
	Codigo        string          `json:"codigo" validate:"required"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

// ActualizarCostosRequest body para POST /api/productos/importar-costos.
type ActualizarCostosRequest struct {
	Items []ActualizarCostoItem `json:"items" validate:"required,min=1,dive"`
}

// ActualizarCostosResponse resumen de la actualización masiva.
type ActualizarCostosResponse struct {
	Actualizados  int      `json:"actualizados"`
	NoEncontrados []string `json:"no_encontrados,omitempty"`
}
