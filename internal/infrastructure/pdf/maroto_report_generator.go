// Package pdf implementa los reportes imprimibles del sistema de cartuchos
// usando Maroto v2.
//
// Layout de la página A4 (reporte de operaciones):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cartucho | Ubicación | Usuario       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de operaciones + fecha de generación            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	coreentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Cartuchos-api/internal/application/report"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateOperationsReport genera el PDF del reporte de operaciones y
// devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateOperationsReport(
	_ context.Context,
	from, to time.Time,
	ops []report.OperationForPDF,
) ([]byte, error) {
	m := maroto.New(reportConfig("Reporte de Operaciones"))

	rango := fmt.Sprintf("Del %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	m.AddRows(titleRow("REPORTE DE OPERACIONES", rango))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(opsHeaderRow())
	for _, r := range opsDetailRows(ops) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(fmt.Sprintf("Total de operaciones: %d", len(ops))))

	return generate(m)
}

// GenerateInventoryReport genera el PDF del inventario de cartuchos.
func (g *MarotoReportGenerator) GenerateInventoryReport(
	_ context.Context,
	cartridges []report.CartridgeForPDF,
	stats report.InventoryStats,
) ([]byte, error) {
	m := maroto.New(reportConfig("Inventario de Cartuchos"))

	m.AddRows(titleRow("INVENTARIO DE CARTUCHOS", time.Now().Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statsRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(inventoryHeaderRow())
	for _, r := range inventoryDetailRows(cartridges) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(fmt.Sprintf("Total de cartuchos: %d", stats.Total)))

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func reportConfig(title string) *coreentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
}

// titleRow: título del reporte (izq) y subtítulo con fechas (der).
func titleRow(title, subtitle string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sistema de gestión de cartuchos", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(subtitle, props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// statsRow: totales por estado en una sola línea.
func statsRow(s report.InventoryStats) core.Row {
	stat := func(label string, n int64) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d", n), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		stat("En almacén", s.InStock),
		stat("En uso", s.InUse),
		stat("En recarga", s.Refilling),
		stat("De baja", s.Disposed),
	)
}

func opsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Cartucho", 3, align.Left),
		h("Ubicación", 3, align.Left),
		h("Usuario", 2, align.Left),
	)
}

// opsDetailRows: una fila por operación.
func opsDetailRows(ops []report.OperationForPDF) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(ops))
	for _, op := range ops {
		cartucho := op.CartridgeModel
		if op.CartridgeSerial != "" {
			cartucho += " (" + op.CartridgeSerial + ")"
		}
		result = append(result, row.New(7).Add(
			cell(op.OperationDate.Format("02/01/2006 15:04"), 2),
			cell(entity.OpDescription(op.Type), 2),
			cell(cartucho, 3),
			cell(op.LocationName, 3),
			cell(op.PerformedBy, 2),
		))
	}
	return result
}

func inventoryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Modelo", 3, align.Left),
		h("Serial", 2, align.Left),
		h("Marca", 2, align.Left),
		h("Estado", 2, align.Left),
		h("Ubicación", 3, align.Left),
	)
}

// inventoryDetailRows: una fila por cartucho.
func inventoryDetailRows(cartridges []report.CartridgeForPDF) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(cartridges))
	for _, c := range cartridges {
		result = append(result, row.New(7).Add(
			cell(c.Model, 3),
			cell(nonEmpty(c.SerialNumber, "—"), 2),
			cell(nonEmpty(c.Brand, "—"), 2),
			cell(entity.StatusDescription(c.Status), 2),
			cell(c.LocationName, 3),
		))
	}
	return result
}

// footerRow: total + fecha de generación.
func footerRow(total string) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Color: colorPrimary,
		})),
		col.New(6).Add(text.New(
			"Generado el "+time.Now().Format("02/01/2006 15:04"),
			props.Text{Size: 7, Align: align.Right, Top: 2, Color: colorGray},
		)),
	)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
