// Package pdf genera la hoja de balance de una base en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Base + período        │  Generado por / fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Equipo | Unidad | Inicial | Neto | Asig. | Bajas |  │
//	│         Cierre                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Inicial / Compras / Traslados / Asig. / Cierre    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Intendencia-api/internal/application/dashboard"
	"github.com/jhoicas/Intendencia-api/internal/application/dto"
)

var _ dashboard.BalanceSheetPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 47, Green: 72, Blue: 38}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa dashboard.BalanceSheetPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador con separador de miles en español.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateBalanceSheetPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBalanceSheetPDF(_ context.Context, sheet dashboard.BalanceSheet) ([]byte, error) {
	if sheet.Breakdown == nil {
		return nil, fmt.Errorf("pdf: hoja de balance vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Balance de equipo - "+sheet.Breakdown.BaseName, true).
		WithAuthor(sheet.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(sheet.Breakdown.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(sheet.Breakdown.Totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: base y período (izq), autor y fecha de generación (der).
func (g *MarotoPDFGenerator) headerRow(sheet dashboard.BalanceSheet) core.Row {
	period := fmt.Sprintf("Período: %s a %s", orOpen(sheet.StartDate, "inicio"), orOpen(sheet.EndDate, "hoy"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Base "+sheet.Breakdown.BaseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("BALANCE DE EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado por: "+sheet.GeneratedBy, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fecha: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de equipos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Equipo", 3, align.Left),
		h("Unidad", 1, align.Center),
		h("Inicial", 2, align.Right),
		h("Neto", 2, align.Right),
		h("Asig.", 1, align.Right),
		h("Bajas", 1, align.Right),
		h("Cierre", 2, align.Right),
	)
}

// tableRows: una fila por tipo de equipo; cierres negativos en rojo.
func (g *MarotoPDFGenerator) tableRows(items []dto.EquipmentBalanceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		closing := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Style: fontstyle.Bold}
		if it.ClosingBalance < 0 {
			closing.Color = colorRed
		}
		num := func(v int64) core.Component {
			return text.New(g.printer.Sprintf("%d", v), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(num(it.OpeningBalance)),
			col.New(2).Add(num(it.NetMovement)),
			col.New(1).Add(num(it.Assigned)),
			col.New(1).Add(num(it.Expended)),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", it.ClosingBalance), closing)),
		))
	}
	return result
}

// totalsRow: bloque de totales de la base alineado a la derecha, una línea cada 5.5 mm.
func (g *MarotoPDFGenerator) totalsRow(t dto.BalanceResponse) core.Row {
	labels := []string{"Saldo inicial:", "Compras:", "Traslados entrada:", "Traslados salida:", "Asignado:", "Bajas:"}
	values := []int64{t.OpeningBalance, t.Purchases, t.TransferIn, t.TransferOut, t.Assigned, t.Expended}

	left := col.New(3)
	right := col.New(3)
	for i := range labels {
		top := float64(i) * 5.5
		left.Add(text.New(labels[i], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		right.Add(text.New(g.printer.Sprintf("%d", values[i]), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	top := float64(len(labels))*5.5 + 1
	left.Add(text.New("SALDO DE CIERRE:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top,
	}))
	right.Add(text.New(g.printer.Sprintf("%d", t.ClosingBalance), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
	}))
	return row.New(42).Add(col.New(6), left, right)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func orOpen(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
