package repository

import (
	"context"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para cuentas de usuario.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
}
