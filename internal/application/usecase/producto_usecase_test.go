package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/usecase"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

func productoActivo(id, codigo string, costo int64) *entity.Producto {
	return &entity.Producto{
		ID:             id,
		Codigo:         codigo,
		Nombre:         "Producto " + codigo,
		PrecioUnitario: decimal.NewFromInt(1000),
		CostoUnitario:  decimal.NewFromInt(costo),
		Stock:          10,
		Activo:         true,
	}
}

func TestCreateProducto_CodigoDuplicado(t *testing.T) {
	repo := newMemProductoRepo(productoActivo("prod-1", "TEC-01", 500))
	uc := usecase.NewProductoUseCase(repo, testLogger())

	_, err := uc.Create(context.Background(), dto.CreateProductoRequest{
		Codigo:         "TEC-01",
		Nombre:         "Teclado",
		PrecioUnitario: decimal.NewFromInt(2990),
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProducto_EntradasInvalidas(t *testing.T) {
	uc := usecase.NewProductoUseCase(newMemProductoRepo(), testLogger())
	ctx := context.Background()

	casos := []dto.CreateProductoRequest{
		{Nombre: "Sin código", PrecioUnitario: decimal.NewFromInt(100)},
		{Codigo: "X-01", PrecioUnitario: decimal.NewFromInt(100)},
		{Codigo: "X-01", Nombre: "Precio negativo", PrecioUnitario: decimal.NewFromInt(-1)},
		{Codigo: "X-01", Nombre: "Stock negativo", PrecioUnitario: decimal.NewFromInt(100), Stock: -1},
	}
	for _, in := range casos {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "request: %+v", in)
	}
}

func TestDeleteProducto_EsBajaLogica(t *testing.T) {
	repo := newMemProductoRepo(productoActivo("prod-1", "TEC-01", 500))
	uc := usecase.NewProductoUseCase(repo, testLogger())

	require.NoError(t, uc.Delete(context.Background(), "prod-1"))
	assert.False(t, repo.productos["prod-1"].Activo)
}

func TestActualizarCostos_ReportaActualizadosYNoEncontrados(t *testing.T) {
	repo := newMemProductoRepo(
		productoActivo("prod-1", "TEC-01", 500),
		productoActivo("prod-2", "MOU-01", 300),
	)
	uc := usecase.NewProductoUseCase(repo, testLogger())

	out, err := uc.ActualizarCostos(context.Background(), dto.ActualizarCostosRequest{
		Items: []dto.ActualizarCostoItem{
			{Codigo: "TEC-01", CostoUnitario: decimal.NewFromInt(650)},
			{Codigo: "MOU-01", CostoUnitario: decimal.NewFromInt(350)},
			{Codigo: "NOEXISTE", CostoUnitario: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Actualizados)
	assert.Equal(t, []string{"NOEXISTE"}, out.NoEncontrados)
	assert.True(t, repo.productos["prod-1"].CostoUnitario.Equal(decimal.NewFromInt(650)))
	assert.True(t, repo.productos["prod-2"].CostoUnitario.Equal(decimal.NewFromInt(350)))
}

func TestActualizarCostos_CostoNegativoRechazado(t *testing.T) {
	repo := newMemProductoRepo(productoActivo("prod-1", "TEC-01", 500))
	uc := usecase.NewProductoUseCase(repo, testLogger())

	_, err := uc.ActualizarCostos(context.Background(), dto.ActualizarCostosRequest{
		Items: []dto.ActualizarCostoItem{{Codigo: "TEC-01", CostoUnitario: decimal.NewFromInt(-10)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, repo.productos["prod-1"].CostoUnitario.Equal(decimal.NewFromInt(500)))
}

func TestActualizarCostos_SinItems(t *testing.T) {
	uc := usecase.NewProductoUseCase(newMemProductoRepo(), testLogger())

	_, err := uc.ActualizarCostos(context.Background(), dto.ActualizarCostosRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
