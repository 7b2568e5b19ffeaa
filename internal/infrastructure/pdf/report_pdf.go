// Package pdf renders the restock report as a printable A4 document using
// Maroto v2: title with the reporting period, one table row per item and the
// urgency label in the rightmost column.
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

	"github.com/prayastok/stok-api/internal/domain/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// statusLabels are the operator-facing names, matching the web UI.
var statusLabels = map[report.StockStatus]string{
	report.StockSufficient: "Stock Mencukupi",
	report.BuySoon:         "Segera Beli",
	report.PrepareToBuy:    "Persiapan Beli",
}

// ReportGenerator renders restock reports with Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator builds the generator.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// Generate renders the rows for the given period and returns the PDF bytes.
func (g *ReportGenerator) Generate(start, end time.Time, rows []report.Row) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Penjualan & Analisis Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(start, end))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(start, end time.Time) core.Row {
	period := fmt.Sprintf("Periode %s - %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Laporan Penjualan & Analisis Stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(8).Add(
		col.New(2).Add(text.New("Kode Barang", header)),
		col.New(4).Add(text.New("Nama Barang", header)),
		col.New(2).Add(text.New("Stock Saat Ini", header)),
		col.New(2).Add(text.New("Total Penjualan", header)),
		col.New(2).Add(text.New("Status Stock", header)),
	)
}

func tableRow(r report.Row) core.Row {
	cell := props.Text{Size: 8}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.Code, cell)),
		col.New(4).Add(text.New(r.Name, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.Quantity), cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.TotalSales), cell)),
		col.New(2).Add(text.New(statusLabels[r.Status], cell)),
	)
}

func footerRow(count int) core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d barang", count), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		),
	)
}
