package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePedidoRequest body para POST /api/pedidos (venta presencial).
type CreatePedidoRequest struct {
	ClienteID string               `json:"cliente_id" validate:"required,uuid"`
	Detalles  []DetallePedidoInput `json:"detalles" validate:"omitempty,dive"`
}

// DetallePedidoInput línea de pedido en la entrada.
type DetallePedidoInput struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// AgregarDetalleRequest body para POST /api/pedidos/:id/detalles.
type AgregarDetalleRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// ListPedidosRequest query params para GET /api/pedidos.
type ListPedidosRequest struct {
	PageRequest
	Estado string `query:"estado"`
}

// DetallePedidoResponse línea de pedido en la salida.
type DetallePedidoResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// PedidoResponse salida de un pedido con sus líneas.
type PedidoResponse struct {
	ID            string                  `json:"id"`
	ClienteID     string                  `json:"cliente_id"`
	VendedorID    *string                 `json:"vendedor_id,omitempty"`
	Estado        string                  `json:"estado"`
	Total         decimal.Decimal         `json:"total"`
	Detalles      []DetallePedidoResponse `json:"detalles,omitempty"`
	FechaCreacion time.Time               `json:"fecha_creacion"`
}

// CarritoItemRequest body para POST /api/carrito/items.
type CarritoItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// CarritoItemResponse una línea del carrito con datos del producto.
type CarritoItemResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CarritoResponse contenido del carrito del usuario autenticado.
type CarritoResponse struct {
	Items []CarritoItemResponse `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

// CheckoutRequest body para POST /api/carrito/checkout.
type CheckoutRequest struct {
	MedioPago string `json:"medio_pago" validate:"required"`
}

// CheckoutResponse resultado del checkout: pedido confirmado y boleta pagada.
type CheckoutResponse struct {
	Pedido    PedidoResponse    `json:"pedido"`
	Documento DocumentoResponse `json:"documento"`
}

// ConfirmarPedidoResponse resultado de confirmar un pedido borrador o pendiente.
type ConfirmarPedidoResponse struct {
	Pedido    PedidoResponse  `json:"pedido"`
	Faltantes []FaltanteStock `json:"faltantes,omitempty"`
}

// FaltanteStock producto sin stock suficiente al confirmar.
type FaltanteStock struct {
	ProductoID     string `json:"producto_id"`
	ProductoNombre string `json:"producto_nombre"`
	Solicitado     int    `json:"solicitado"`
	Disponible     int    `json:"disponible"`
}
