package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumns = `id, rut, razon_social, giro, direccion, email, telefono, fecha_creacion`

// ProveedorRepo implementación del puerto ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador de persistencia para proveedores.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (` + proveedorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.RUT, p.RazonSocial, p.Giro, p.Direccion, p.Email, p.Telefono, p.FechaCreacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(ctx context.Context, id string) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1`, id).Scan(
		&p.ID, &p.RUT, &p.RazonSocial, &p.Giro, &p.Direccion, &p.Email, &p.Telefono, &p.FechaCreacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos de contacto del proveedor.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET razon_social = $2, giro = $3, direccion = $4, email = $5, telefono = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.RazonSocial, p.Giro, p.Direccion, p.Email, p.Telefono)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// Delete elimina el proveedor.
func (r *ProveedorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}

// List lista todos los proveedores.
func (r *ProveedorRepo) List(ctx context.Context) ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+proveedorColumns+` FROM proveedores ORDER BY razon_social`)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.RUT, &p.RazonSocial, &p.Giro, &p.Direccion, &p.Email, &p.Telefono, &p.FechaCreacion); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
