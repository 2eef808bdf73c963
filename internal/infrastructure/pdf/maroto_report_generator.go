// Package pdf implementa la exportación de informes tabulares a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Stocky + título del informe  │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Cantidad | % del total                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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
	"golang.org/x/text/number"

	"github.com/jhoicas/stocky-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador. Las cifras se formatean según lang
// (separador de miles y decimales); vacío = español.
func NewMarotoReportGenerator(lang string) *MarotoReportGenerator {
	tag := language.Spanish
	if lang != "" {
		if t, err := language.Parse(lang); err == nil {
			tag = t
		}
	}
	return &MarotoReportGenerator{printer: message.NewPrinter(tag)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(report dto.ReportResponse, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor("Stocky", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report.Title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(4))

	total := 0.0
	for _, r := range report.Rows {
		total += r.Value
	}

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(report.Rows, total)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("STOCKY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Cantidad", 3, align.Right),
		h("% del total", 3, align.Right),
	)
}

func (g *MarotoReportGenerator) tableRows(rows []dto.ReportRow, total float64) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin datos", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		share := 0.0
		if total > 0 {
			share = r.Value / total
		}
		rw := row.New(7).Add(
			col.New(6).Add(text.New(nonEmpty(r.Key, "—"), props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(3).Add(text.New(g.formatValue(r.Value), props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.printer.Sprint(number.Percent(share, number.MaxFractionDigits(1))), props.Text{
				Size: 9, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		)
		if i%2 == 1 {
			rw.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		out = append(out, rw)
	}
	return out
}

func (g *MarotoReportGenerator) totalRow(total float64) core.Row {
	return row.New(9).Add(
		col.New(6).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2, Left: 1,
		})),
		col.New(3).Add(text.New(g.formatValue(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatValue cifra con separador de miles del idioma configurado ("1.250" en español).
func (g *MarotoReportGenerator) formatValue(v float64) string {
	return g.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
