package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
)

// ClienteUseCase casos de uso para clientes de facturación.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create valida el RUT (dígito verificador) y crea el cliente.
// El RUT se guarda normalizado, sin puntos ni guión.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := rut.Validar(in.RUT); err != nil {
		return nil, err
	}
	normalizado := rut.Normalizar(in.RUT)
	existing, err := uc.repo.GetByRUT(ctx, normalizado)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	cliente := &entity.Cliente{
		ID:               uuid.New().String(),
		UsuarioID:        in.UsuarioID,
		RUT:              normalizado,
		RazonSocial:      in.RazonSocial,
		Giro:             in.Giro,
		Direccion:        in.Direccion,
		Comuna:           in.Comuna,
		Telefono:         in.Telefono,
		EmailFacturacion: in.EmailFacturacion,
		FechaCreacion:    time.Now(),
	}
	if err := uc.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	return toClienteResponse(cliente), nil
}

// GetByRUT busca un cliente por RUT en cualquier formato de entrada.
func (uc *ClienteUseCase) GetByRUT(ctx context.Context, valor string) (*dto.ClienteResponse, error) {
	if err := rut.Validar(valor); err != nil {
		// un RUT mal formado simplemente no existe como cliente
		if errors.Is(err, domain.ErrRUTInvalido) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cliente, err := uc.repo.GetByRUT(ctx, rut.Normalizar(valor))
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	return toClienteResponse(cliente), nil
}

// Update actualiza datos de facturación. El RUT no se puede cambiar.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	if in.RazonSocial != nil {
		cliente.RazonSocial = *in.RazonSocial
	}
	if in.Giro != nil {
		cliente.Giro = *in.Giro
	}
	if in.Direccion != nil {
		cliente.Direccion = *in.Direccion
	}
	if in.Comuna != nil {
		cliente.Comuna = *in.Comuna
	}
	if in.Telefono != nil {
		cliente.Telefono = *in.Telefono
	}
	if in.EmailFacturacion != nil {
		cliente.EmailFacturacion = *in.EmailFacturacion
	}
	if err := uc.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// List lista clientes con paginación.
func (uc *ClienteUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ClienteResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClienteResponse(c))
	}
	return items, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:               c.ID,
		RUT:              rut.Formatear(c.RUT),
		RazonSocial:      c.RazonSocial,
		Giro:             c.Giro,
		Direccion:        c.Direccion,
		Comuna:           c.Comuna,
		Telefono:         c.Telefono,
		EmailFacturacion: c.EmailFacturacion,
		UsuarioID:        c.UsuarioID,
		FechaCreacion:    c.FechaCreacion,
	}
}
