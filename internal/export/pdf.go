package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Report is a titled document made of a few summary lines and tables.
type Report struct {
	Title   string
	Summary []string
	Tables  []Table
}

type Table struct {
	Title string
	Data  Dataset
}

type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays the report out on A4 pages. An empty table prints a
// placeholder row instead of being skipped.
func (e *PDFExporter) Render(r Report) ([]byte, error) {
	for _, t := range r.Tables {
		if len(t.Data.Headers) == 0 {
			return nil, fmt.Errorf("pdf table %q requires at least one header", t.Title)
		}
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if r.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(r.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "", 10)
	for _, line := range r.Summary {
		pdf.CellFormat(0, 6, tr(line), "", 1, "", false, 0, "")
	}

	for _, t := range r.Tables {
		pdf.Ln(5)
		if t.Title != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, tr(t.Title), "", 1, "", false, 0, "")
		}

		pdf.SetFont("Arial", "B", 10)
		colWidth := 190.0 / float64(len(t.Data.Headers))
		for _, header := range t.Data.Headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		if len(t.Data.Rows) == 0 {
			pdf.CellFormat(190, 7, "nothing yet", "1", 1, "C", false, 0, "")
			continue
		}
		for _, row := range t.Data.Rows {
			for _, header := range t.Data.Headers {
				pdf.CellFormat(colWidth, 7, tr(fit(pdf, row[header], colWidth-2)), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit shortens s with an ellipsis until it is at most width wide.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	rs := []rune(s)
	for len(rs) > 0 && pdf.GetStringWidth(string(rs)+"...") > width {
		rs = rs[:len(rs)-1]
	}
	return string(rs) + "..."
}
