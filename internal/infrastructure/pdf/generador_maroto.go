// Package pdf implementa la representación imprimible de facturas y
// boletas usando Maroto v2. Página carta con encabezado del emisor,
// snapshot del cliente, tabla de líneas y bloque neto/IVA/total.
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
	"github.com/NinoOnFire/ticashop/pkg/config"
)

var (
	colorPrimario = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ facturacion.GeneradorPDF = (*GeneradorMaroto)(nil)

// GeneradorMaroto implementa facturacion.GeneradorPDF usando Maroto v2.
type GeneradorMaroto struct {
	empresa config.EmpresaConfig
}

// NewGeneradorMaroto construye el generador con los datos del emisor.
func NewGeneradorMaroto(empresa config.EmpresaConfig) *GeneradorMaroto {
	return &GeneradorMaroto{empresa: empresa}
}

// Generar genera el PDF del documento y devuelve sus bytes.
func (g *GeneradorMaroto) Generar(
	doc *entity.DocumentoVenta,
	detalles []*entity.DetalleDocumento,
	productos map[string]*entity.Producto,
) ([]byte, error) {
	cfg := marotocfg.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(tituloDocumento(doc), true).
		WithAuthor(g.empresa.Nombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.encabezado(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(g.filaEmisor())
	m.AddRows(filaReceptor(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(cabeceraTabla())
	for _, r := range filasDetalle(detalles, productos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))
	m.AddRows(filaTotales(doc))
	m.AddRows(filaCondiciones(doc))

	generado, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return generado.GetBytes(), nil
}

func tituloDocumento(doc *entity.DocumentoVenta) string {
	return fmt.Sprintf("%s N° %d", strings.ToUpper(string(doc.TipoDocumento)), doc.Folio)
}

// encabezado: razón social + RUT del emisor (izq), tipo, folio y fecha (der).
func (g *GeneradorMaroto) encabezado(doc *entity.DocumentoVenta) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.empresa.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimario, Top: 1,
			}),
			text.New("RUT: "+g.empresa.RUT, props.Text{
				Size: 9, Top: 9, Color: colorGris,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(string(doc.TipoDocumento))+" ELECTRÓNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimario, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", doc.Folio), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emisión: "+doc.FechaEmision.Format("02-01-2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGris,
			}),
		),
	)
}

func (g *GeneradorMaroto) filaEmisor() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(fmt.Sprintf("Giro: %s   |   Dirección: %s, %s   |   Tel: %s",
				oGuion(g.empresa.Giro), oGuion(g.empresa.Direccion),
				oGuion(g.empresa.Ciudad), oGuion(g.empresa.Telefono),
			), props.Text{Size: 8, Top: 7, Color: colorGris}),
		),
	)
}

// filaReceptor usa el snapshot del cliente congelado en el documento.
func filaReceptor(doc *entity.DocumentoVenta) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SEÑOR(ES)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(doc.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RUT: %s   |   Giro: %s   |   %s, %s",
				rut.Formatear(doc.RUT), oGuion(doc.Giro),
				oGuion(doc.Direccion), oGuion(doc.Comuna),
			), props.Text{Size: 8, Top: 12, Color: colorGris}),
		),
	)
}

func cabeceraTabla() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimario, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func filasDetalle(detalles []*entity.DetalleDocumento, productos map[string]*entity.Producto) []core.Row {
	result := make([]core.Row, 0, len(detalles))
	for _, d := range detalles {
		codigo, nombre := "—", "—"
		if p, ok := productos[d.ProductoID]; ok {
			codigo, nombre = p.Codigo, p.Nombre
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				codigo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatearMonto(d.PrecioUnitarioVenta.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatearMonto(d.Subtotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// filaTotales: bloque neto / IVA / total alineado a la derecha.
func filaTotales(doc *entity.DocumentoVenta) core.Row {
	etiqueta := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	valor := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	totalEtiqueta := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimario, Right: 2,
	})
	totalValor := text.New("$"+formatearMonto(doc.Total.StringFixed(0)), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimario, Right: 1,
	})

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			etiqueta("Monto neto:"),
			etiqueta("IVA (19%):"),
			totalEtiqueta,
		),
		col.New(3).Add(
			valor("$"+formatearMonto(doc.Neto.StringFixed(0))),
			valor("$"+formatearMonto(doc.IVA.StringFixed(0))),
			totalValor,
		),
		col.New(3),
	)
}

// filaCondiciones: estado, medio de pago o plazo y vencimiento.
func filaCondiciones(doc *entity.DocumentoVenta) core.Row {
	condicion := "Contado"
	if doc.MedioDePago != "" {
		condicion = "Contado - " + doc.MedioDePago
	}
	if doc.DiasPlazo != nil {
		condicion = fmt.Sprintf("Crédito a %d días", *doc.DiasPlazo)
	}
	if doc.FechaVencimiento != nil {
		condicion += "   |   Vence: " + doc.FechaVencimiento.Format("02-01-2006")
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Condición de pago: "+condicion, props.Text{
				Size: 8, Top: 2, Color: colorGris,
			}),
			text.New("Estado: "+string(doc.Estado), props.Text{
				Size: 8, Top: 6, Color: colorGris,
			}),
		),
	)
}

func oGuion(s string) string {
	if s != "" {
		return s
	}
	return "—"
}

// formatearMonto inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000"
func formatearMonto(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
