package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Create valida el RUT y crea el proveedor.
func (uc *ProveedorUseCase) Create(ctx context.Context, in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := rut.Validar(in.RUT); err != nil {
		return nil, err
	}
	proveedor := &entity.Proveedor{
		ID:            uuid.New().String(),
		RUT:           rut.Normalizar(in.RUT),
		RazonSocial:   in.RazonSocial,
		Giro:          in.Giro,
		Direccion:     in.Direccion,
		Email:         in.Email,
		Telefono:      in.Telefono,
		FechaCreacion: time.Now(),
	}
	if err := uc.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProveedorUseCase) GetByID(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(proveedor), nil
}

// Update actualiza datos de contacto. El RUT no se puede cambiar.
func (uc *ProveedorUseCase) Update(ctx context.Context, id string, in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	if in.RazonSocial != "" {
		proveedor.RazonSocial = in.RazonSocial
	}
	if in.Giro != "" {
		proveedor.Giro = in.Giro
	}
	if in.Direccion != "" {
		proveedor.Direccion = in.Direccion
	}
	if in.Email != "" {
		proveedor.Email = in.Email
	}
	if in.Telefono != "" {
		proveedor.Telefono = in.Telefono
	}
	if err := uc.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Delete elimina un proveedor.
func (uc *ProveedorUseCase) Delete(ctx context.Context, id string) error {
	proveedor, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// List lista todos los proveedores.
func (uc *ProveedorUseCase) List(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return items, nil
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:            p.ID,
		RUT:           rut.Formatear(p.RUT),
		RazonSocial:   p.RazonSocial,
		Giro:          p.Giro,
		Direccion:     p.Direccion,
		Email:         p.Email,
		Telefono:      p.Telefono,
		FechaCreacion: p.FechaCreacion,
	}
}
