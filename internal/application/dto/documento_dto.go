package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmitirDocumentoRequest body para POST /api/documentos.
// Modalidad "ahora" exige medio_pago; "plazos" exige dias_plazo.
type EmitirDocumentoRequest struct {
	PedidoID  string `json:"pedido_id" validate:"required,uuid"`
	Tipo      string `json:"tipo" validate:"required,oneof=Factura Boleta"`
	Modalidad string `json:"modalidad" validate:"required,oneof=ahora plazos"`
	MedioPago string `json:"medio_pago"`
	DiasPlazo int    `json:"dias_plazo" validate:"omitempty,oneof=15 30 45 60 90"`
}

// DetalleDocumentoResponse línea congelada de un documento.
type DetalleDocumentoResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// DocumentoResponse salida de un documento de venta.
type DocumentoResponse struct {
	ID               string                     `json:"id"`
	Tipo             string                     `json:"tipo"`
	Folio            int                        `json:"folio"`
	PedidoID         string                     `json:"pedido_id"`
	ClienteID        string                     `json:"cliente_id"`
	RazonSocial      string                     `json:"razon_social"`
	RUT              string                     `json:"rut"`
	Giro             string                     `json:"giro,omitempty"`
	Direccion        string                     `json:"direccion,omitempty"`
	Comuna           string                     `json:"comuna,omitempty"`
	Estado           string                     `json:"estado"`
	Neto             decimal.Decimal            `json:"neto"`
	IVA              decimal.Decimal            `json:"iva"`
	Total            decimal.Decimal            `json:"total"`
	SaldoPendiente   decimal.Decimal            `json:"saldo_pendiente"`
	DiasPlazo        *int                       `json:"dias_plazo,omitempty"`
	FechaEmision     time.Time                  `json:"fecha_emision"`
	FechaVencimiento *time.Time                 `json:"fecha_vencimiento,omitempty"`
	Detalles         []DetalleDocumentoResponse `json:"detalles,omitempty"`
}

// ListDocumentosRequest query params para GET /api/documentos.
type ListDocumentosRequest struct {
	PageRequest
	Tipo   string `query:"tipo"`
	Estado string `query:"estado"`
}

// RegistrarPagoRequest body para POST /api/documentos/:id/pagos.
type RegistrarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto" validate:"required"`
	MedioPago  string          `json:"medio_pago" validate:"required"`
	Referencia string          `json:"referencia" validate:"max=200"`
}

// PagoResponse salida de un pago registrado.
type PagoResponse struct {
	ID          string          `json:"id"`
	DocumentoID string          `json:"documento_id"`
	Monto       decimal.Decimal `json:"monto"`
	MedioPago   string          `json:"medio_pago"`
	Referencia  string          `json:"referencia,omitempty"`
	Fecha       time.Time       `json:"fecha"`
}

// RegistrarPagoResponse pago más el estado resultante del documento.
type RegistrarPagoResponse struct {
	Pago            PagoResponse    `json:"pago"`
	EstadoDocumento string          `json:"estado_documento"`
	SaldoPendiente  decimal.Decimal `json:"saldo_pendiente"`
}

// DetalleNotaCreditoInput línea a devolver en una nota de crédito.
type DetalleNotaCreditoInput struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// EmitirNotaCreditoRequest body para POST /api/documentos/:id/notas-credito.
type EmitirNotaCreditoRequest struct {
	Motivo   string                    `json:"motivo" validate:"required,min=1,max=500"`
	Detalles []DetalleNotaCreditoInput `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleNotaCreditoResponse línea de una nota de crédito.
type DetalleNotaCreditoResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// NotaCreditoResponse salida de una nota de crédito emitida.
type NotaCreditoResponse struct {
	ID              string                       `json:"id"`
	Folio           int                          `json:"folio"`
	DocumentoID     string                       `json:"documento_id"`
	Motivo          string                       `json:"motivo"`
	Estado          string                       `json:"estado"`
	Neto            decimal.Decimal              `json:"neto"`
	IVA             decimal.Decimal              `json:"iva"`
	Total           decimal.Decimal              `json:"total"`
	EstadoDocumento string                       `json:"estado_documento"`
	FechaEmision    time.Time                    `json:"fecha_emision"`
	Detalles        []DetalleNotaCreditoResponse `json:"detalles,omitempty"`
}
