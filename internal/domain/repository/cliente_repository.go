package repository

import (
	"context"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// ClienteRepository puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByRUT(ctx context.Context, rut string) (*entity.Cliente, error)
	GetByUsuarioID(ctx context.Context, usuarioID string) (*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	List(ctx context.Context, limit, offset int) ([]*entity.Cliente, error)
}

// ProveedorRepository puerto de persistencia para proveedores.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Proveedor, error)
}
