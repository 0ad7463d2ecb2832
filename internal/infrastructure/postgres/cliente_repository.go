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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumns = `id, usuario_id, rut, razon_social, giro, direccion, comuna, telefono, email_facturacion, fecha_creacion`

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de persistencia para clientes.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente. El RUT es único.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UsuarioID, c.RUT, c.RazonSocial, c.Giro, c.Direccion, c.Comuna, c.Telefono, c.EmailFacturacion, c.FechaCreacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	return r.getBy(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id)
}

// GetByRUT obtiene un cliente por RUT normalizado.
func (r *ClienteRepo) GetByRUT(ctx context.Context, rut string) (*entity.Cliente, error) {
	return r.getBy(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE rut = $1`, rut)
}

// GetByUsuarioID obtiene el perfil de cliente asociado a una cuenta.
func (r *ClienteRepo) GetByUsuarioID(ctx context.Context, usuarioID string) (*entity.Cliente, error) {
	return r.getBy(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE usuario_id = $1`, usuarioID)
}

func (r *ClienteRepo) getBy(ctx context.Context, query string, arg any) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.UsuarioID, &c.RUT, &c.RazonSocial, &c.Giro, &c.Direccion, &c.Comuna, &c.Telefono, &c.EmailFacturacion, &c.FechaCreacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos de facturación del cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET razon_social = $2, giro = $3, direccion = $4, comuna = $5, telefono = $6, email_facturacion = $7, usuario_id = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.RazonSocial, c.Giro, c.Direccion, c.Comuna, c.Telefono, c.EmailFacturacion, c.UsuarioID)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// List lista clientes con paginación.
func (r *ClienteRepo) List(ctx context.Context, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes ORDER BY razon_social LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(
			&c.ID, &c.UsuarioID, &c.RUT, &c.RazonSocial, &c.Giro, &c.Direccion, &c.Comuna, &c.Telefono, &c.EmailFacturacion, &c.FechaCreacion,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
