// Package pdf genera la hoja de producción de un lote en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Club + código      │  Lote + estado + fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: pedidos / unidades / referencias                  │
//	│  TABLA: Producto | Talla | Unidades                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERSONALIZACIONES: Pedido | Cliente | Prenda | Nombre | Nº │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con club y lote para el almacén                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/clubmerch-api/internal/application/report"
	"github.com/jhoicas/clubmerch-api/internal/domain/production"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.SheetRenderer = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa report.SheetRenderer usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

func (g *MarotoSheetGenerator) Extension() string   { return "pdf" }
func (g *MarotoSheetGenerator) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) Render(_ context.Context, sheet production.Sheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de producción "+sheet.BatchKey, true).
		WithAuthor(sheet.ClubName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(sheet))

	m.AddRows(tableHeaderRow(
		th{"Producto", 7, align.Left},
		th{"Talla", 2, align.Center},
		th{"Unidades", 3, align.Right},
	))
	m.AddRows(lineRows(sheet.Lines)...)

	if len(sheet.Personalizations) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionTitle("PERSONALIZACIONES"))
		m.AddRows(tableHeaderRow(
			th{"Pedido", 3, align.Left},
			th{"Cliente", 3, align.Left},
			th{"Prenda", 2, align.Left},
			th{"Nombre", 2, align.Left},
			th{"Nº", 1, align.Center},
			th{"Ud.", 1, align.Right},
		))
		m.AddRows(personalizationRows(sheet.Personalizations)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: club (izq) y lote + estado + fecha (der).
func headerRow(sheet production.Sheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.ClubName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+sheet.ClubCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Lote "+sheet.BatchKey, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(statusLine(sheet), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func statusLine(sheet production.Sheet) string {
	date := sheet.GeneratedAt.Format("02/01/2006 15:04")
	if sheet.Status == "" {
		return date
	}
	return sheet.Status + "   |   " + date
}

func summaryRow(sheet production.Sheet) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Pedidos: %d   |   Unidades: %d   |   Referencias: %d",
			sheet.Orders, sheet.Units, len(sheet.Lines),
		), props.Text{Size: 9, Top: 3, Color: colorGray}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

type th struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo del color primario.
func tableHeaderRow(cols ...th) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(size int, s string, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func zebra(r core.Row, i int) core.Row {
	if i%2 == 1 {
		return r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
	}
	return r
}

// lineRows: una fila por producto y talla.
func lineRows(lines []production.Line) []core.Row {
	out := make([]core.Row, 0, len(lines)+1)
	for i, l := range lines {
		out = append(out, zebra(row.New(6).Add(
			cell(7, l.Name, align.Left),
			cell(2, nonEmpty(l.Size, "—"), align.Center),
			cell(3, strconv.Itoa(l.Quantity), align.Right),
		), i))
	}
	if len(lines) == 0 {
		out = append(out, row.New(8).Add(col.New(12).Add(
			text.New("El lote no tiene pedidos.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	return out
}

// personalizationRows: una fila por prenda con nombre o dorsal.
func personalizationRows(items []production.Personalization) []core.Row {
	out := make([]core.Row, 0, len(items))
	for i, p := range items {
		out = append(out, zebra(row.New(6).Add(
			cell(3, p.OrderGlobalID, align.Left),
			cell(3, p.Customer, align.Left),
			cell(2, p.ProductName+" "+p.Size, align.Left),
			cell(2, nonEmpty(p.Name, "—"), align.Left),
			cell(1, nonEmpty(p.Number, "—"), align.Center),
			cell(1, strconv.Itoa(p.Quantity), align.Right),
		), i))
	}
	return out
}

// footerRow: QR para identificar el paquete en el almacén.
func footerRow(sheet production.Sheet) core.Row {
	qr := fmt.Sprintf("%s|%s|%d|%d", sheet.ClubCode, sheet.BatchKey, sheet.Orders, sheet.Units)
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanea el código para registrar la entrada del lote en el almacén.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New(sheet.ClubCode+" · Lote "+sheet.BatchKey, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 16, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
