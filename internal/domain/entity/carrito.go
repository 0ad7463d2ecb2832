package entity

import "time"

// Carrito agregado de compra de un usuario (rol Cliente). Reemplaza el
// carro de sesión: se persiste con clave UsuarioID y se pasa explícito
// por el flujo de checkout.
type Carrito struct {
	UsuarioID          string
	Items              []CarritoItem
	FechaActualizacion time.Time
}

// CarritoItem producto y cantidad dentro del carrito.
type CarritoItem struct {
	ProductoID string
	Cantidad   int
}

// Vacio reporta si el carrito no tiene ítems.
func (c *Carrito) Vacio() bool {
	return len(c.Items) == 0
}

// CantidadDe devuelve la cantidad en el carrito para un producto (0 si no está).
func (c *Carrito) CantidadDe(productoID string) int {
	for _, it := range c.Items {
		if it.ProductoID == productoID {
			return it.Cantidad
		}
	}
	return 0
}

// Agregar suma cantidad al ítem del producto, creándolo si no existe.
func (c *Carrito) Agregar(productoID string, cantidad int) {
	for i := range c.Items {
		if c.Items[i].ProductoID == productoID {
			c.Items[i].Cantidad += cantidad
			return
		}
	}
	c.Items = append(c.Items, CarritoItem{ProductoID: productoID, Cantidad: cantidad})
}

// Quitar elimina el ítem del producto si existe.
func (c *Carrito) Quitar(productoID string) {
	for i := range c.Items {
		if c.Items[i].ProductoID == productoID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}
