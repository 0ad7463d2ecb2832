package postgres

import (
	"context"
	"fmt"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.CarritoRepository = (*CarritoRepo)(nil)

// CarritoRepo implementación del puerto CarritoRepository sobre PostgreSQL.
// El carrito se guarda normalizado en carrito_items, una fila por producto.
type CarritoRepo struct {
	q Querier
}

// NewCarritoRepository construye el adaptador de persistencia para carritos.
func NewCarritoRepository(q Querier) *CarritoRepo {
	return &CarritoRepo{q: q}
}

// Get devuelve el carrito del usuario (nil si no tiene ítems).
func (r *CarritoRepo) Get(ctx context.Context, usuarioID string) (*entity.Carrito, error) {
	rows, err := r.q.Query(ctx,
		`SELECT producto_id, cantidad, fecha_actualizacion FROM carrito_items WHERE usuario_id = $1 ORDER BY producto_id`,
		usuarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("get carrito: %w", err)
	}
	defer rows.Close()
	carrito := &entity.Carrito{UsuarioID: usuarioID}
	for rows.Next() {
		var item entity.CarritoItem
		if err := rows.Scan(&item.ProductoID, &item.Cantidad, &carrito.FechaActualizacion); err != nil {
			return nil, fmt.Errorf("scan carrito item: %w", err)
		}
		carrito.Items = append(carrito.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if carrito.Vacio() {
		return nil, nil
	}
	return carrito, nil
}

// Save reemplaza el contenido completo del carrito del usuario.
func (r *CarritoRepo) Save(ctx context.Context, c *entity.Carrito) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM carrito_items WHERE usuario_id = $1`, c.UsuarioID); err != nil {
		return fmt.Errorf("limpiar carrito: %w", err)
	}
	for _, item := range c.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO carrito_items (usuario_id, producto_id, cantidad, fecha_actualizacion) VALUES ($1, $2, $3, $4)`,
			c.UsuarioID, item.ProductoID, item.Cantidad, c.FechaActualizacion,
		)
		if err != nil {
			return fmt.Errorf("guardar carrito item: %w", err)
		}
	}
	return nil
}

// Delete vacía el carrito del usuario.
func (r *CarritoRepo) Delete(ctx context.Context, usuarioID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM carrito_items WHERE usuario_id = $1`, usuarioID)
	if err != nil {
		return fmt.Errorf("delete carrito: %w", err)
	}
	return nil
}
