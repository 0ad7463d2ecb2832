package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// ProductoUseCase casos de uso CRUD para productos del catálogo.
// El stock NO se modifica por aquí salvo en la carga inicial: los descuentos
// y reposiciones ocurren al confirmar pedidos y emitir notas de crédito.
type ProductoUseCase struct {
	repo repository.ProductoRepository
	log  *logger.Logger
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, log *logger.Logger) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, log: log}
}

// Create crea un producto. El código debe ser único.
func (uc *ProductoUseCase) Create(ctx context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioUnitario.IsNegative() || in.CostoUnitario.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	afecto := true
	if in.AfectoIVA != nil {
		afecto = *in.AfectoIVA
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:                 uuid.New().String(),
		Codigo:             in.Codigo,
		Nombre:             in.Nombre,
		Descripcion:        in.Descripcion,
		PrecioUnitario:     in.PrecioUnitario,
		CostoUnitario:      in.CostoUnitario,
		Stock:              in.Stock,
		StockMinimo:        in.StockMinimo,
		ProveedorID:        in.ProveedorID,
		AfectoIVA:          afecto,
		Activo:             true,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := uc.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(producto), nil
}

// Update actualiza campos del producto. El código no se puede cambiar.
func (uc *ProductoUseCase) Update(ctx context.Context, id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.PrecioUnitario != nil {
		if in.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PrecioUnitario = *in.PrecioUnitario
	}
	if in.CostoUnitario != nil {
		if in.CostoUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.CostoUnitario = *in.CostoUnitario
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.Stock = *in.Stock
	}
	if in.StockMinimo != nil {
		producto.StockMinimo = *in.StockMinimo
	}
	if in.ProveedorID != nil {
		producto.ProveedorID = in.ProveedorID
	}
	if in.AfectoIVA != nil {
		producto.AfectoIVA = *in.AfectoIVA
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.FechaActualizacion = time.Now()
	if err := uc.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Delete desactiva un producto (borrado lógico).
func (uc *ProductoUseCase) Delete(ctx context.Context, id string) error {
	producto, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// List lista productos con búsqueda y paginación.
func (uc *ProductoUseCase) List(ctx context.Context, in dto.ListProductosRequest) ([]dto.ProductoResponse, error) {
	in.DefaultPage()
	var list []*entity.Producto
	var err error
	if in.SoloBajoStock {
		list, err = uc.repo.ListStockBajo(ctx)
	} else {
		list, err = uc.repo.List(ctx, in.Buscar, in.SoloActivos, in.Limit, in.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return items, nil
}

// ActualizarCostos actualiza costos unitarios en lote, por código de producto.
// Los códigos no encontrados no abortan la operación: se informan aparte.
func (uc *ProductoUseCase) ActualizarCostos(ctx context.Context, in dto.ActualizarCostosRequest) (*dto.ActualizarCostosResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := &dto.ActualizarCostosResponse{}
	for _, item := range in.Items {
		if item.CostoUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.repo.GetByCodigo(ctx, item.Codigo)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			out.NoEncontrados = append(out.NoEncontrados, item.Codigo)
			continue
		}
		if err := uc.repo.UpdateCosto(ctx, producto.ID, item.CostoUnitario); err != nil {
			return nil, err
		}
		out.Actualizados++
	}
	uc.log.Info().
		Int("actualizados", out.Actualizados).
		Int("no_encontrados", len(out.NoEncontrados)).
		Msg("costos actualizados en lote")
	return out, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:             p.ID,
		Codigo:         p.Codigo,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		PrecioUnitario: p.PrecioUnitario,
		CostoUnitario:  p.CostoUnitario,
		Stock:          p.Stock,
		StockMinimo:    p.StockMinimo,
		ProveedorID:    p.ProveedorID,
		AfectoIVA:      p.AfectoIVA,
		Activo:         p.Activo,
		StockBajo:      p.TieneStockBajo(),
		FechaCreacion:  p.FechaCreacion,
	}
}
