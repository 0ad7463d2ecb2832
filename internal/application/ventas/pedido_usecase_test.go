package ventas_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

func armarPedidos(t *testing.T, productos ...*entity.Producto) (*ventas.PedidoUseCase, *fakeTxRunner) {
	t.Helper()
	tx := &fakeTxRunner{
		pedidoRepo:    newMemPedidoRepo(),
		productoRepo:  newMemProductoRepo(productos...),
		documentoRepo: newMemDocumentoRepo(),
		pagoRepo:      newMemPagoRepo(),
		carritoRepo:   newMemCarritoRepo(),
	}
	clientes := newMemClienteRepo(&entity.Cliente{
		ID:          "cliente-1",
		RUT:         "760864285",
		RazonSocial: "Comercial Andes Ltda.",
	})
	uc := ventas.NewPedidoUseCase(tx, tx.pedidoRepo, tx.productoRepo, clientes, tx.documentoRepo, testLogger())
	return uc, tx
}

func TestCrearPedido_ConLineasCalculaTotal(t *testing.T) {
	uc, _ := armarPedidos(t,
		producto("prod-a", "Teclado", 10),
		producto("prod-b", "Mouse", 10),
	)

	out, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles: []dto.DetallePedidoInput{
			{ProductoID: "prod-a", Cantidad: 2},
			{ProductoID: "prod-b", Cantidad: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PedidoBorrador), out.Estado)
	assert.Len(t, out.Detalles, 2)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(3000)), "total: %s", out.Total)
}

func TestCrearPedido_ClienteInexistente(t *testing.T) {
	uc, _ := armarPedidos(t, producto("prod-a", "Teclado", 10))

	_, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{ClienteID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Agregar el mismo producto dos veces acumula sobre la línea existente en
// lugar de crear una segunda.
func TestAgregarLinea_AcumulaSobreLineaExistente(t *testing.T) {
	uc, _ := armarPedidos(t, producto("prod-a", "Teclado", 10))

	creado, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles:  []dto.DetallePedidoInput{{ProductoID: "prod-a", Cantidad: 2}},
	})
	require.NoError(t, err)

	out, err := uc.AgregarLinea(context.Background(), creado.ID, dto.AgregarDetalleRequest{
		ProductoID: "prod-a",
		Cantidad:   3,
	})
	require.NoError(t, err)
	require.Len(t, out.Detalles, 1, "el producto repetido no crea otra línea")
	assert.Equal(t, 5, out.Detalles[0].Cantidad)
	assert.True(t, out.Detalles[0].Subtotal.Equal(decimal.NewFromInt(5000)), "subtotal: %s", out.Detalles[0].Subtotal)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(5000)), "total: %s", out.Total)
}

func TestAgregarLinea_ProductoNuevoCreaLinea(t *testing.T) {
	uc, _ := armarPedidos(t,
		producto("prod-a", "Teclado", 10),
		producto("prod-b", "Mouse", 10),
	)

	creado, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles:  []dto.DetallePedidoInput{{ProductoID: "prod-a", Cantidad: 2}},
	})
	require.NoError(t, err)

	out, err := uc.AgregarLinea(context.Background(), creado.ID, dto.AgregarDetalleRequest{
		ProductoID: "prod-b",
		Cantidad:   1,
	})
	require.NoError(t, err)
	assert.Len(t, out.Detalles, 2)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(3000)), "total: %s", out.Total)
}

func TestAgregarLinea_CantidadNoPositiva(t *testing.T) {
	uc, _ := armarPedidos(t, producto("prod-a", "Teclado", 10))

	_, err := uc.AgregarLinea(context.Background(), "ped-1", dto.AgregarDetalleRequest{
		ProductoID: "prod-a",
		Cantidad:   0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAgregarLinea_ProductoInactivo(t *testing.T) {
	inactivo := producto("prod-a", "Teclado", 10)
	inactivo.Activo = false
	uc, _ := armarPedidos(t, inactivo)

	creado, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{ClienteID: "cliente-1"})
	require.NoError(t, err)

	_, err = uc.AgregarLinea(context.Background(), creado.ID, dto.AgregarDetalleRequest{
		ProductoID: "prod-a",
		Cantidad:   1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un pedido ya confirmado no admite cambios de líneas.
func TestAgregarLinea_PedidoProcesandoRechazado(t *testing.T) {
	uc, tx := armarPedidos(t, producto("prod-a", "Teclado", 10))

	creado, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles:  []dto.DetallePedidoInput{{ProductoID: "prod-a", Cantidad: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, tx.pedidoRepo.UpdateEstado(context.Background(), creado.ID, entity.PedidoProcesando))

	_, err = uc.AgregarLinea(context.Background(), creado.ID, dto.AgregarDetalleRequest{
		ProductoID: "prod-a",
		Cantidad:   1,
	})
	assert.ErrorIs(t, err, domain.ErrEstadoPedido)
}

// Cuando el pedido ya tiene documento emitido, cambiar una línea resincroniza
// las líneas del documento y recalcula neto e IVA desde el nuevo total bruto.
func TestAgregarLinea_ResincronizaDocumentoEmitido(t *testing.T) {
	uc, tx := armarPedidos(t,
		producto("prod-a", "Teclado", 10),
		producto("prod-b", "Mouse", 10),
	)
	ctx := context.Background()

	creado, err := uc.Crear(ctx, "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles:  []dto.DetallePedidoInput{{ProductoID: "prod-a", Cantidad: 2}},
	})
	require.NoError(t, err)

	pedidoID := creado.ID
	require.NoError(t, tx.documentoRepo.Create(ctx, &entity.DocumentoVenta{
		ID:            "doc-1",
		TipoDocumento: entity.DocFactura,
		Folio:         1000,
		PedidoID:      &pedidoID,
		ClienteID:     "cliente-1",
		Estado:        entity.DocEmitida,
		Total:         decimal.NewFromInt(2000),
	}))

	out, err := uc.AgregarLinea(ctx, pedidoID, dto.AgregarDetalleRequest{
		ProductoID: "prod-b",
		Cantidad:   1,
	})
	require.NoError(t, err)
	require.True(t, out.Total.Equal(decimal.NewFromInt(3000)), "total del pedido: %s", out.Total)

	doc, err := tx.documentoRepo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(3000)), "total del documento: %s", doc.Total)
	assert.True(t, doc.Neto.Equal(decimal.RequireFromString("2521.01")), "neto: %s", doc.Neto)
	assert.True(t, doc.IVA.Equal(decimal.RequireFromString("478.99")), "iva: %s", doc.IVA)
	assert.True(t, doc.Neto.Add(doc.IVA).Equal(doc.Total), "neto+iva debe cuadrar con el total")

	lineasDoc, err := tx.documentoRepo.GetDetalles(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, lineasDoc, 2, "las líneas del documento siguen a las del pedido")
}

func TestQuitarLinea_EliminaYResincronizaDocumento(t *testing.T) {
	uc, tx := armarPedidos(t,
		producto("prod-a", "Teclado", 10),
		producto("prod-b", "Mouse", 10),
	)
	ctx := context.Background()

	creado, err := uc.Crear(ctx, "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles: []dto.DetallePedidoInput{
			{ProductoID: "prod-a", Cantidad: 2},
			{ProductoID: "prod-b", Cantidad: 1},
		},
	})
	require.NoError(t, err)

	pedidoID := creado.ID
	require.NoError(t, tx.documentoRepo.Create(ctx, &entity.DocumentoVenta{
		ID:            "doc-1",
		TipoDocumento: entity.DocFactura,
		Folio:         1000,
		PedidoID:      &pedidoID,
		ClienteID:     "cliente-1",
		Estado:        entity.DocEmitida,
		Total:         decimal.NewFromInt(3000),
	}))

	out, err := uc.QuitarLinea(ctx, pedidoID, "prod-b")
	require.NoError(t, err)
	require.Len(t, out.Detalles, 1)
	assert.Equal(t, "prod-a", out.Detalles[0].ProductoID)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(2000)), "total: %s", out.Total)

	doc, err := tx.documentoRepo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(2000)), "total del documento: %s", doc.Total)

	lineasDoc, err := tx.documentoRepo.GetDetalles(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, lineasDoc, 1)
}

func TestQuitarLinea_ProductoSinLinea(t *testing.T) {
	uc, _ := armarPedidos(t, producto("prod-a", "Teclado", 10))

	creado, err := uc.Crear(context.Background(), "vend-1", dto.CreatePedidoRequest{
		ClienteID: "cliente-1",
		Detalles:  []dto.DetallePedidoInput{{ProductoID: "prod-a", Cantidad: 1}},
	})
	require.NoError(t, err)

	_, err = uc.QuitarLinea(context.Background(), creado.ID, "prod-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El filtro de estado corre en el repositorio, antes de paginar: una página
// con límite devuelve solo pedidos del estado pedido, sin quedar corta por
// filas descartadas después.
func TestListPedidos_FiltraEstadoAntesDePaginar(t *testing.T) {
	uc, tx := armarPedidos(t)
	ctx := context.Background()

	estados := []entity.EstadoPedido{
		entity.PedidoBorrador,
		entity.PedidoPendiente,
		entity.PedidoBorrador,
		entity.PedidoPendiente,
		entity.PedidoPendiente,
	}
	for i, estado := range estados {
		require.NoError(t, tx.pedidoRepo.Create(ctx, &entity.Pedido{
			ID:        "ped-" + string(rune('a'+i)),
			ClienteID: "cliente-1",
			Estado:    estado,
		}))
	}

	page, err := uc.List(ctx, dto.ListPedidosRequest{
		PageRequest: dto.PageRequest{Limit: 2},
		Estado:      string(entity.PedidoPendiente),
	})
	require.NoError(t, err)
	require.Len(t, page, 2, "la página se llena con pedidos del estado filtrado")
	for _, p := range page {
		assert.Equal(t, string(entity.PedidoPendiente), p.Estado)
	}

	resto, err := uc.List(ctx, dto.ListPedidosRequest{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 2},
		Estado:      string(entity.PedidoPendiente),
	})
	require.NoError(t, err)
	require.Len(t, resto, 1, "el tercer pendiente aparece en la página siguiente")
	assert.Equal(t, string(entity.PedidoPendiente), resto[0].Estado)
}
