package dto

import "time"

// CreateClienteRequest body para POST /api/clientes.
type CreateClienteRequest struct {
	RUT              string  `json:"rut" validate:"required"`
	RazonSocial      string  `json:"razon_social" validate:"required,min=1,max=200"`
	Giro             string  `json:"giro" validate:"max=200"`
	Direccion        string  `json:"direccion" validate:"max=300"`
	Comuna           string  `json:"comuna" validate:"max=100"`
	Telefono         string  `json:"telefono" validate:"max=30"`
	EmailFacturacion string  `json:"email_facturacion" validate:"omitempty,email"`
	UsuarioID        *string `json:"usuario_id" validate:"omitempty,uuid"`
}

// UpdateClienteRequest body para PUT /api/clientes/:id.
type UpdateClienteRequest struct {
	RazonSocial      *string `json:"razon_social" validate:"omitempty,min=1,max=200"`
	Giro             *string `json:"giro" validate:"omitempty,max=200"`
	Direccion        *string `json:"direccion" validate:"omitempty,max=300"`
	Comuna           *string `json:"comuna" validate:"omitempty,max=100"`
	Telefono         *string `json:"telefono" validate:"omitempty,max=30"`
	EmailFacturacion *string `json:"email_facturacion" validate:"omitempty,email"`
}

// ClienteResponse salida de un cliente. El RUT va formateado.
type ClienteResponse struct {
	ID               string    `json:"id"`
	RUT              string    `json:"rut"`
	RazonSocial      string    `json:"razon_social"`
	Giro             string    `json:"giro,omitempty"`
	Direccion        string    `json:"direccion,omitempty"`
	Comuna           string    `json:"comuna,omitempty"`
	Telefono         string    `json:"telefono,omitempty"`
	EmailFacturacion string    `json:"email_facturacion,omitempty"`
	UsuarioID        *string   `json:"usuario_id,omitempty"`
	FechaCreacion    time.Time `json:"fecha_creacion"`
}

// CreateProveedorRequest body para POST /api/proveedores.
type CreateProveedorRequest struct {
	RUT         string `json:"rut" validate:"required"`
	RazonSocial string `json:"razon_social" validate:"required,min=1,max=200"`
	Giro        string `json:"giro" validate:"max=200"`
	Direccion   string `json:"direccion" validate:"max=300"`
	Telefono    string `json:"telefono" validate:"max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID            string    `json:"id"`
	RUT           string    `json:"rut"`
	RazonSocial   string    `json:"razon_social"`
	Giro          string    `json:"giro,omitempty"`
	Direccion     string    `json:"direccion,omitempty"`
	Telefono      string    `json:"telefono,omitempty"`
	Email         string    `json:"email,omitempty"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}
