package reportes

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/application/dto"
	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
)

// PlanillaWriter puerto para volcar filas de reporte a una planilla.
// El formato de archivo es responsabilidad del adaptador.
type PlanillaWriter interface {
	Escribir(nombre string, encabezados []string, filas [][]string) error
}

// UseCase reportes de ventas enviadas y rentabilidad por línea vendida.
type UseCase struct {
	repo repository.ReporteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReporteRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Ventas reporte de pedidos enviados en el período: filas + monto total.
func (uc *UseCase) Ventas(ctx context.Context, in dto.ReporteRequest) (*dto.ReporteVentasDTO, error) {
	desde, hasta, err := parsearPeriodo(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.VentasEnviadas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := &dto.ReporteVentasDTO{
		Periodo:     dto.PeriodoDTO{Desde: in.Desde, Hasta: in.Hasta},
		Filas:       make([]dto.VentaEnviadaDTO, 0, len(rows)),
		TotalVentas: decimal.Zero,
	}
	for _, r := range rows {
		out.Filas = append(out.Filas, dto.VentaEnviadaDTO{
			PedidoID: r.PedidoID,
			Cliente:  r.ClienteNombre,
			RUT:      rut.Formatear(r.ClienteRUT),
			Vendedor: r.Vendedor,
			Fecha:    r.Fecha.Format("2006-01-02"),
			Estado:   string(r.Estado),
			Total:    r.Total,
		})
		out.TotalVentas = out.TotalVentas.Add(r.Total)
	}
	return out, nil
}

// Rentabilidad reporte por línea de documento vendida: precio neto unitario
// (desglose de IVA hacia atrás), costo congelado, utilidad y margen.
func (uc *UseCase) Rentabilidad(ctx context.Context, in dto.ReporteRequest) (*dto.ReporteRentabilidadDTO, error) {
	desde, hasta, err := parsearPeriodo(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.DetallesVendidos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := &dto.ReporteRentabilidadDTO{
		Periodo:     dto.PeriodoDTO{Desde: in.Desde, Hasta: in.Hasta},
		Filas:       make([]dto.RentabilidadDTO, 0, len(rows)),
		MargenTotal: decimal.Zero,
	}
	cien := decimal.NewFromInt(100)
	for _, r := range rows {
		netoUnit, _ := domain.DesglosarIVA(r.PrecioUnitarioBruto)
		cantidad := decimal.NewFromInt(int64(r.Cantidad))
		margen := netoUnit.Sub(r.CostoUnitario).Mul(cantidad)
		margenPct := decimal.Zero
		if netoUnit.GreaterThan(decimal.Zero) {
			margenPct = netoUnit.Sub(r.CostoUnitario).Div(netoUnit).Mul(cien).Round(2)
		}
		out.Filas = append(out.Filas, dto.RentabilidadDTO{
			Fecha:         r.FechaEmision.Format("2006-01-02"),
			Documento:     fmt.Sprintf("%s %d", r.TipoDocumento, r.Folio),
			Vendedor:      r.Vendedor,
			Cliente:       r.ClienteNombre,
			Proveedor:     r.ProveedorNombre,
			Producto:      r.ProductoNombre,
			Cantidad:      r.Cantidad,
			CostoUnitario: r.CostoUnitario,
			PrecioNeto:    netoUnit,
			Margen:        margen,
			MargenPct:     margenPct,
		})
		out.MargenTotal = out.MargenTotal.Add(margen)
	}
	return out, nil
}

// ExportarRentabilidad vuelca el reporte de rentabilidad a una planilla.
func (uc *UseCase) ExportarRentabilidad(ctx context.Context, in dto.ReporteRequest, w PlanillaWriter) error {
	reporte, err := uc.Rentabilidad(ctx, in)
	if err != nil {
		return err
	}
	encabezados := []string{"Fecha", "Documento", "Vendedor", "Cliente", "Proveedor", "Producto", "Cantidad", "Costo Unitario", "Precio Neto", "Margen", "Margen %"}
	filas := make([][]string, 0, len(reporte.Filas))
	for _, f := range reporte.Filas {
		filas = append(filas, []string{
			f.Fecha, f.Documento, f.Vendedor, f.Cliente, f.Proveedor, f.Producto,
			fmt.Sprintf("%d", f.Cantidad),
			f.CostoUnitario.StringFixed(2),
			f.PrecioNeto.StringFixed(2),
			f.Margen.StringFixed(2),
			f.MargenPct.StringFixed(2),
		})
	}
	return w.Escribir("rentabilidad", encabezados, filas)
}

// parsearPeriodo valida fechas YYYY-MM-DD opcionales.
func parsearPeriodo(in dto.ReporteRequest) (*time.Time, *time.Time, error) {
	var desde, hasta *time.Time
	if in.Desde != "" {
		t, err := time.Parse("2006-01-02", in.Desde)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		desde = &t
	}
	if in.Hasta != "" {
		t, err := time.Parse("2006-01-02", in.Hasta)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		// inclusivo hasta el final del día
		fin := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		hasta = &fin
	}
	return desde, hasta, nil
}
