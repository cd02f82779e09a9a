// Package pdf genera el reporte de movimientos de stock en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + rango de fechas │ fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: N° movimientos / Total entradas / Total salidas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Código | Producto | Tipo | Cant | Antes ... │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Ensure MovementReportGenerator implements ports.MovementReportGenerator.
var _ ports.MovementReportGenerator = (*MovementReportGenerator)(nil)

// MovementReportGenerator implementa ports.MovementReportGenerator usando Maroto v2.
type MovementReportGenerator struct{}

func NewMovementReportGenerator() *MovementReportGenerator { return &MovementReportGenerator{} }

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MovementReportGenerator) GenerateMovementReport(ctx context.Context, report ports.MovementReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Movements))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Movements) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el periodo seleccionado.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(report.Movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report ports.MovementReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Periodo: "+periodLabel(report.From, report.To), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(movs []*entity.StockMovementDetail) core.Row {
	var totalIn, totalOut int64
	for _, m := range movs {
		if m.Type == entity.MovementTypeIn {
			totalIn += m.Quantity
		} else {
			totalOut += m.Quantity
		}
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Movimientos", strconv.Itoa(len(movs)), colorPrimary),
		cell("Total entradas", formatQty(totalIn), colorIn),
		cell("Total salidas", formatQty(totalOut), colorOut),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Código", 1, align.Left),
		h("Producto", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Antes", 1, align.Right),
		h("Después", 1, align.Right),
		h("Operador", 2, align.Left),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(movs []*entity.StockMovementDetail) []core.Row {
	result := make([]core.Row, 0, len(movs))
	for _, m := range movs {
		typeLabel, typeColor := "Entrada", colorIn
		if m.Type == entity.MovementTypeOut {
			typeLabel, typeColor = "Salida", colorOut
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(m.CreatedAt.Local().Format("02/01/2006 15:04"), 2, align.Left),
			cell(m.ProductCode, 1, align.Left),
			cell(m.ProductName, 3, align.Left),
			col.New(1).Add(text.New(typeLabel, props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: typeColor, Style: fontstyle.Bold,
			})),
			cell(formatQty(m.Quantity), 1, align.Right),
			cell(formatQty(m.BeforeStock), 1, align.Right),
			cell(formatQty(m.AfterStock), 1, align.Right),
			cell(nonEmpty(m.OperatorName, "—"), 2, align.Left),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "todo el historial"
	case from == nil:
		return "hasta " + to.Format("02/01/2006")
	case to == nil:
		return "desde " + from.Format("02/01/2006")
	default:
		return from.Format("02/01/2006") + " a " + to.Format("02/01/2006")
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty inserta puntos de miles. Ej: 1000000 → "1.000.000".
func formatQty(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg, s = true, s[1:]
	}
	l := len(s)
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
