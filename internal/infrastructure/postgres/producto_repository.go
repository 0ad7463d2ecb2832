package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, codigo, nombre, descripcion, precio_unitario, costo_unitario, stock, stock_minimo, proveedor_id, afecto_iva, activo, fecha_creacion, fecha_actualizacion`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.PrecioUnitario, p.CostoUnitario,
		p.Stock, p.StockMinimo, p.ProveedorID, p.AfectoIVA, p.Activo, p.FechaCreacion, p.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	return r.getBy(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductoRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error) {
	return r.getBy(ctx, `SELECT `+productoColumns+` FROM productos WHERE codigo = $1`, codigo)
}

// GetForUpdate bloquea la fila del producto dentro de la transacción del caller.
func (r *ProductoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	return r.getBy(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductoRepo) getBy(ctx context.Context, query string, arg any) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.PrecioUnitario, &p.CostoUnitario,
		&p.Stock, &p.StockMinimo, &p.ProveedorID, &p.AfectoIVA, &p.Activo, &p.FechaCreacion, &p.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, precio_unitario = $4, costo_unitario = $5,
			stock = $6, stock_minimo = $7, proveedor_id = $8, afecto_iva = $9, activo = $10, fecha_actualizacion = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.PrecioUnitario, p.CostoUnitario,
		p.Stock, p.StockMinimo, p.ProveedorID, p.AfectoIVA, p.Activo, p.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateCosto actualiza solo el costo del producto (importación masiva).
func (r *ProductoRepo) UpdateCosto(ctx context.Context, id string, costo decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE productos SET costo_unitario = $2, fecha_actualizacion = now() WHERE id = $1`,
		id, costo,
	)
	if err != nil {
		return fmt.Errorf("update costo producto: %w", err)
	}
	return nil
}

// Delete desactiva el producto (borrado lógico).
func (r *ProductoRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE productos SET activo = false, fecha_actualizacion = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

// List lista productos con búsqueda opcional por código o nombre.
func (r *ProductoRepo) List(ctx context.Context, buscar string, soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE ($1 = '' OR codigo ILIKE '%' || $1 || '%' OR nombre ILIKE '%' || $1 || '%')
		AND (NOT $2 OR activo)
		ORDER BY nombre LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, buscar, soloActivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return scanProductos(rows)
}

// ListStockBajo lista productos activos con stock en o bajo el mínimo.
func (r *ProductoRepo) ListStockBajo(ctx context.Context) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos
		WHERE activo AND stock_minimo > 0 AND stock <= stock_minimo ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock bajo: %w", err)
	}
	defer rows.Close()
	return scanProductos(rows)
}

// DescontarStock aplica el decremento condicional. Devuelve false si no se
// afectó ninguna fila (stock insuficiente o producto inexistente).
func (r *ProductoRepo) DescontarStock(ctx context.Context, id string, cantidad int) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = stock - $2, fecha_actualizacion = now() WHERE id = $1 AND stock >= $2`,
		id, cantidad,
	)
	if err != nil {
		return false, fmt.Errorf("descontar stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ReponerStock reingresa cantidad al stock del producto.
func (r *ProductoRepo) ReponerStock(ctx context.Context, id string, cantidad int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = stock + $2, fecha_actualizacion = now() WHERE id = $1`,
		id, cantidad,
	)
	if err != nil {
		return fmt.Errorf("reponer stock: %w", err)
	}
	return nil
}

func scanProductos(rows pgx.Rows) ([]*entity.Producto, error) {
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.PrecioUnitario, &p.CostoUnitario,
			&p.Stock, &p.StockMinimo, &p.ProveedorID, &p.AfectoIVA, &p.Activo, &p.FechaCreacion, &p.FechaActualizacion,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
