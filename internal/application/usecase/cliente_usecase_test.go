package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/usecase"
	"github.com/NinoOnFire/ticashop/internal/domain"
)

func TestCreateCliente_NormalizaRUT(t *testing.T) {
	repo := newMemClienteRepo()
	uc := usecase.NewClienteUseCase(repo)

	out, err := uc.Create(context.Background(), dto.CreateClienteRequest{
		RUT:         "12.345.678-5",
		RazonSocial: "Comercial Andes Ltda.",
	})
	require.NoError(t, err)

	// se persiste sin puntos ni guión
	assert.Equal(t, "123456785", repo.clientes[out.ID].RUT)
}

func TestCreateCliente_RUTInvalido(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())

	_, err := uc.Create(context.Background(), dto.CreateClienteRequest{
		RUT:         "12.345.678-9",
		RazonSocial: "DV Incorrecto SpA",
	})
	require.ErrorIs(t, err, domain.ErrRUTInvalido)
}

func TestCreateCliente_RUTDuplicado(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateClienteRequest{RUT: "12345678-5", RazonSocial: "Primero"})
	require.NoError(t, err)

	// mismo RUT en otro formato de entrada
	_, err = uc.Create(ctx, dto.CreateClienteRequest{RUT: "12.345.678-5", RazonSocial: "Segundo"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateCliente_SinRazonSocial(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())

	_, err := uc.Create(context.Background(), dto.CreateClienteRequest{RUT: "12345678-5"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByRUT_AceptaCualquierFormato(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())
	ctx := context.Background()

	creado, err := uc.Create(ctx, dto.CreateClienteRequest{RUT: "123456785", RazonSocial: "Andes"})
	require.NoError(t, err)

	for _, formato := range []string{"12.345.678-5", "12345678-5", "123456785"} {
		out, err := uc.GetByRUT(ctx, formato)
		require.NoError(t, err, "formato: %s", formato)
		assert.Equal(t, creado.ID, out.ID)
	}
}

func TestGetByRUT_MalformadoEsNotFound(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())

	_, err := uc.GetByRUT(context.Background(), "12.345.678-9")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCliente_ActualizaSoloCamposEnviados(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())
	ctx := context.Background()

	creado, err := uc.Create(ctx, dto.CreateClienteRequest{
		RUT:         "12345678-5",
		RazonSocial: "Andes",
		Giro:        "Venta de insumos",
	})
	require.NoError(t, err)

	nuevoTelefono := "+56 9 1234 5678"
	out, err := uc.Update(ctx, creado.ID, dto.UpdateClienteRequest{Telefono: &nuevoTelefono})
	require.NoError(t, err)

	assert.Equal(t, nuevoTelefono, out.Telefono)
	assert.Equal(t, "Andes", out.RazonSocial)
	assert.Equal(t, "Venta de insumos", out.Giro)
}

func TestUpdateCliente_Inexistente(t *testing.T) {
	uc := usecase.NewClienteUseCase(newMemClienteRepo())

	razon := "Nadie"
	_, err := uc.Update(context.Background(), "cli-x", dto.UpdateClienteRequest{RazonSocial: &razon})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
