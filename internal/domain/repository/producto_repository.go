package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// ProductoRepository puerto de persistencia para productos.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	UpdateCosto(ctx context.Context, id string, costo decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, buscar string, soloActivos bool, limit, offset int) ([]*entity.Producto, error)
	ListStockBajo(ctx context.Context) ([]*entity.Producto, error)

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro
	// de la transacción del caller.
	GetForUpdate(ctx context.Context, id string) (*entity.Producto, error)
	// DescontarStock aplica el decremento condicional
	// (UPDATE ... SET stock = stock - $2 WHERE id = $1 AND stock >= $2)
	// y reporta si alguna fila fue afectada.
	DescontarStock(ctx context.Context, id string, cantidad int) (bool, error)
	// ReponerStock reingresa cantidad al stock (notas de crédito).
	ReponerStock(ctx context.Context, id string, cantidad int) error
}
