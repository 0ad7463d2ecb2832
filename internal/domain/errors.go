package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrRUTInvalido        = errors.New("RUT inválido")

	// Ciclo de pedido y facturación.
	ErrPedidoSinLineas    = errors.New("el pedido no tiene productos")
	ErrEstadoPedido       = errors.New("transición de estado de pedido no permitida")
	ErrPedidoYaFacturado  = errors.New("el pedido ya tiene un documento asociado")
	ErrDocumentoPagado    = errors.New("el documento ya está pagado")
	ErrEstadoDocumento    = errors.New("transición de estado de documento no permitida")
	ErrPagoExcedeSaldo    = errors.New("el monto excede el saldo pendiente")
	ErrPlazoNotaCredito   = errors.New("la factura supera el plazo de 30 días para nota de crédito")
	ErrCantidadDevuelta   = errors.New("cantidad devuelta fuera de rango")
	ErrNotaSinMonto       = errors.New("la nota de crédito debe tener monto mayor a cero")

	// ErrConflictoStock: el decremento condicional no afectó filas después de
	// haber verificado stock con la fila bloqueada. Inconsistencia fatal,
	// siempre aborta la transacción completa.
	ErrConflictoStock = errors.New("conflicto de stock: decremento condicional sin filas afectadas")
)

// ErrStockInsuficiente se construye por producto con las cantidades en juego;
// la confirmación de pedido reúne todos los faltantes antes de fallar.
var ErrStockInsuficiente = errors.New("stock insuficiente")
