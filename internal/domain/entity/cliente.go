package entity

import "time"

// Cliente representa un cliente de facturación. RUT es único y se valida
// con dígito verificador antes de cualquier escritura.
// UsuarioID enlaza (opcionalmente) la cuenta de usuario dueña del perfil.
type Cliente struct {
	ID               string
	UsuarioID        *string
	RUT              string
	RazonSocial      string
	Giro             string
	Direccion        string
	Comuna           string
	Telefono         string
	EmailFacturacion string
	FechaCreacion    time.Time
}

// Proveedor representa un proveedor de productos.
type Proveedor struct {
	ID            string
	RUT           string
	RazonSocial   string
	Giro          string
	Direccion     string
	Email         string
	Telefono      string
	FechaCreacion time.Time
}
