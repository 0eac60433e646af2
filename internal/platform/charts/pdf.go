package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"recognition/internal/domain/stats"
)

// PDFRenderer draws each statistics series as a bar chart, one PDF per kind,
// under Dir/<userID>/.
type PDFRenderer struct {
	Dir string
}

func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{Dir: dir}
}

func (r *PDFRenderer) Path(userID, kind string) string {
	return filepath.Join(r.Dir, filepath.Base(userID), kind+".pdf")
}

func (r *PDFRenderer) Render(ctx context.Context, userID string, summary stats.Summary) error {
	charts := []struct {
		kind   string
		title  string
		series stats.Series
		unit   string
	}{
		{stats.ChartPriority, "Goals by priority", summary.Priority, ""},
		{stats.ChartStatus, "Goals by status", summary.Status, ""},
		{stats.ChartProgress, "Average progress", summary.Progress, "%"},
	}
	for _, c := range charts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.write(r.Path(userID, c.kind), c.title, c.series, c.unit); err != nil {
			return fmt.Errorf("render %s chart: %w", c.kind, err)
		}
	}
	return nil
}

// write renders to a temp file in the target directory and renames it into
// place so readers never see a partial chart.
func (r *PDFRenderer) write(path, title string, series stats.Series, unit string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chart-*.pdf")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	pdf := barChart(title, series, unit)
	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

const (
	chartLeft   = 25.0
	chartTop    = 35.0
	chartWidth  = 160.0
	chartHeight = 100.0
)

func barChart(title string, series stats.Series, unit string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	if len(series) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, "No goals yet")
		return pdf
	}

	top := 0.0
	for _, p := range series {
		if p.Value > top {
			top = p.Value
		}
	}
	if top == 0 {
		top = 1
	}

	pdf.SetDrawColor(80, 80, 80)
	pdf.Line(chartLeft, chartTop+chartHeight, chartLeft+chartWidth, chartTop+chartHeight)
	pdf.Line(chartLeft, chartTop, chartLeft, chartTop+chartHeight)

	slot := chartWidth / float64(len(series))
	barWidth := slot * 0.6
	pdf.SetFont("Helvetica", "", 10)
	for i, p := range series {
		height := p.Value / top * chartHeight
		x := chartLeft + float64(i)*slot + (slot-barWidth)/2
		y := chartTop + chartHeight - height
		pdf.SetFillColor(52, 101, 164)
		pdf.Rect(x, y, barWidth, height, "F")

		pdf.SetXY(x, y-6)
		pdf.CellFormat(barWidth, 5, formatValue(p.Value, unit), "", 0, "C", false, 0, "")
		pdf.SetXY(x-2, chartTop+chartHeight+2)
		pdf.CellFormat(barWidth+4, 5, p.Label, "", 0, "C", false, 0, "")
	}
	return pdf
}

func formatValue(v float64, unit string) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d%s", int64(v), unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
