package facturacion_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// facturaConLineas arma una factura pagada con sus líneas congeladas y los
// productos correspondientes al stock indicado.
func facturaConLineas(tx *fakeTxRunner, emision time.Time) *entity.DocumentoVenta {
	factura := documentoEmitido("fac-1", entity.DocFactura, 1000, 35700)
	factura.Estado = entity.DocPagada
	factura.FechaEmision = emision
	tx.documentoRepo.documentos[factura.ID] = factura

	tx.productoRepo.Create(context.Background(), &entity.Producto{
		ID: "prod-a", Codigo: "TEC-01", Nombre: "Teclado", Stock: 10, Activo: true,
	})
	tx.productoRepo.Create(context.Background(), &entity.Producto{
		ID: "prod-b", Codigo: "MON-01", Nombre: "Monitor", Stock: 4, Activo: true,
	})

	lineas := []*entity.DetalleDocumento{
		{ID: "dd-1", DocumentoID: factura.ID, ProductoID: "prod-a", Cantidad: 3, PrecioUnitarioVenta: decimal.NewFromInt(5900)},
		{ID: "dd-2", DocumentoID: factura.ID, ProductoID: "prod-b", Cantidad: 1, PrecioUnitarioVenta: decimal.NewFromInt(18000)},
	}
	for _, d := range lineas {
		d.CalcularSubtotal()
		tx.documentoRepo.detalles[factura.ID] = append(tx.documentoRepo.detalles[factura.ID], d)
	}
	return factura
}

func armarNotas() (*facturacion.NotaCreditoUseCase, *fakeTxRunner) {
	tx := &fakeTxRunner{
		documentoRepo: newMemDocumentoRepo(),
		pagoRepo:      newMemPagoRepo(),
		notaRepo:      newMemNotaRepo(),
		productoRepo:  newMemProductoRepo(),
		pedidoRepo:    newMemPedidoRepo(),
	}
	uc := facturacion.NewNotaCreditoUseCase(tx, tx.notaRepo, tx.productoRepo, testLogger())
	return uc, tx
}

func TestEmitirNota_ParcialReponeStockYDejaDevueltaParcial(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "producto defectuoso",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 2}},
	}
	out, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.NoError(t, err)

	assert.Equal(t, 1000, out.Folio)
	assert.Equal(t, string(entity.NotaAplicada), out.Estado)
	assert.Equal(t, string(entity.DocDevueltaParcial), out.EstadoDocumento)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(11800)), "total: %s", out.Total)
	// neto + iva reconstruyen el monto de la nota
	assert.True(t, out.Neto.Add(out.IVA).Equal(out.Total))

	assert.Equal(t, 12, tx.productoRepo.productos["prod-a"].Stock)
	assert.Equal(t, 4, tx.productoRepo.productos["prod-b"].Stock)
	assert.Equal(t, entity.DocDevueltaParcial, tx.documentoRepo.documentos["fac-1"].Estado)
}

func TestEmitirNota_TotalDejaFacturaDevuelta(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))

	in := dto.EmitirNotaCreditoRequest{
		Motivo: "anulación de la venta completa",
		Detalles: []dto.DetalleNotaCreditoInput{
			{ProductoID: "prod-a", Cantidad: 3},
			{ProductoID: "prod-b", Cantidad: 1},
		},
	}
	out, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.NoError(t, err)

	assert.Equal(t, string(entity.DocDevuelta), out.EstadoDocumento)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(35700)), "total: %s", out.Total)
	assert.Equal(t, 13, tx.productoRepo.productos["prod-a"].Stock)
	assert.Equal(t, 5, tx.productoRepo.productos["prod-b"].Stock)
}

func TestEmitirNota_FueraDePlazoRechazada(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -31))

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución tardía",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 1}},
	}
	_, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.ErrorIs(t, err, domain.ErrPlazoNotaCredito)
	assert.Empty(t, tx.notaRepo.notas)
}

func TestEmitirNota_CantidadMayorALaFacturada(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 4}},
	}
	_, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.ErrorIs(t, err, domain.ErrCantidadDevuelta)
	assert.Equal(t, 10, tx.productoRepo.productos["prod-a"].Stock)
}

func TestEmitirNota_ProductoNoFacturado(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-x", Cantidad: 1}},
	}
	_, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.ErrorIs(t, err, domain.ErrCantidadDevuelta)
}

func TestEmitirNota_SobreBoletaRechazada(t *testing.T) {
	uc, tx := armarNotas()
	boleta := documentoEmitido("bol-1", entity.DocBoleta, 1000, 5990)
	tx.documentoRepo.documentos[boleta.ID] = boleta

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 1}},
	}
	_, err := uc.Emitir(context.Background(), "user-1", "bol-1", in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmitirNota_FacturaAnuladaRechazada(t *testing.T) {
	uc, tx := armarNotas()
	factura := facturaConLineas(tx, time.Now().AddDate(0, 0, -5))
	factura.Estado = entity.DocAnulada

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 1}},
	}
	_, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.ErrorIs(t, err, domain.ErrEstadoDocumento)
}

func TestEmitirNota_SinMotivoNiLineas(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))

	_, err := uc.Emitir(context.Background(), "user-1", "fac-1", dto.EmitirNotaCreditoRequest{Motivo: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Emitir(context.Background(), "user-1", "fac-1", dto.EmitirNotaCreditoRequest{
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmitirNota_FolioSecuencial(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))
	tx.notaRepo.notas["nota-previa"] = &entity.NotaCredito{ID: "nota-previa", FacturaID: "otra", Folio: 1042}

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-a", Cantidad: 1}},
	}
	out, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.NoError(t, err)
	assert.Equal(t, 1043, out.Folio)
}

func TestGetNota_ConLineasYNombreDeProducto(t *testing.T) {
	uc, tx := armarNotas()
	facturaConLineas(tx, time.Now().AddDate(0, 0, -5))

	in := dto.EmitirNotaCreditoRequest{
		Motivo:   "devolución",
		Detalles: []dto.DetalleNotaCreditoInput{{ProductoID: "prod-b", Cantidad: 1}},
	}
	emitida, err := uc.Emitir(context.Background(), "user-1", "fac-1", in)
	require.NoError(t, err)

	out, err := uc.Get(context.Background(), emitida.ID)
	require.NoError(t, err)
	require.Len(t, out.Detalles, 1)
	assert.Equal(t, "Monitor", out.Detalles[0].ProductoNombre)
	assert.True(t, out.Detalles[0].Subtotal.Equal(decimal.NewFromInt(18000)))
}

func TestGetNota_Inexistente(t *testing.T) {
	uc, _ := armarNotas()

	_, err := uc.Get(context.Background(), "nota-x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
