package export

import (
	"bytes"
	"fmt"
	"time"

	"dumptrac/internal/dashboard"

	"github.com/jung-kurt/gofpdf"
)

const fontName = "Helvetica"

var colWidths = []float64{18, 20, 95, 30, 30, 25, 40}

// PDF renders the dashboard table as a landscape A4 document.
func PDF(rows []dashboard.Row, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, "dumpTrac reports", "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s, %d open of %d", generatedAt.Format(dashboard.TimeLayout), openCount(rows), len(rows)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	drawRow(pdf, tr, dashboard.Headers, true)
	if len(rows) == 0 {
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(sum(colWidths), 8, "No reports yet", "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		drawRow(pdf, tr, row.Cells(), false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		pdf.CellFormat(colWidths[i], 7, tr(col), "1", 0, "L", header, 0, "")
	}
	pdf.Ln(-1)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
