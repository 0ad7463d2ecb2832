package dto

import "time"

// RegisterRequest entrada para registro de un usuario cliente.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"required,min=1,max=200"`
	RUT      string `json:"rut" validate:"required"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Nombre        string    `json:"nombre"`
	Rol           string    `json:"rol"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
