package entity

import "time"

// Roles de usuario.
const (
	RolAdministrador = "Administrador"
	RolVendedor      = "Vendedor"
	RolCliente       = "Cliente"
)

// Usuario cuenta del personal o de un comprador.
type Usuario struct {
	ID                 string
	Email              string
	Nombre             string
	PasswordHash       string
	Rol                string
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}
