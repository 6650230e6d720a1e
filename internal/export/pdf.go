package export

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 10.0
	pdfTopMargin = 5.0
)

// PDF writes the report as a landscape A4 document: logo top-left, centered
// title, date/time top-right, then a grid table with a black header band.
//
// A missing or unreadable logo degrades to a document without it; warning
// reports that so the caller can surface a toast. Any other failure aborts
// the document.
func PDF(w io.Writer, r Report, logoPath string, now time.Time) (warning bool, err error) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()

	if !placeLogo(doc, logoPath) {
		warning = true
	}

	doc.SetFont("Helvetica", "B", 14)
	doc.SetXY(0, pdfTopMargin+9)
	doc.CellFormat(pageWidth, 8, r.Title, "", 0, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 8)
	doc.SetXY(pdfMargin, pdfTopMargin+6)
	doc.CellFormat(pageWidth-2*pdfMargin, 4, "Fecha: "+spanishDate(now), "", 2, "R", false, 0, "")
	doc.CellFormat(pageWidth-2*pdfMargin, 4, "Hora: "+clockTime(now), "", 0, "R", false, 0, "")

	widths := scaleWidths(r.Columns, pageWidth-2*pdfMargin)

	doc.SetXY(pdfMargin, pdfTopMargin+25)
	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(0, 0, 0)
	doc.SetTextColor(255, 255, 255)
	doc.SetDrawColor(0, 0, 0)
	for i, col := range r.Columns {
		doc.CellFormat(widths[i], 6, col.Header, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 7)
	doc.SetFillColor(255, 255, 255)
	for _, row := range r.Rows {
		doc.SetX(pdfMargin)
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			if text, _, ok := cellColor(cell); ok {
				doc.SetTextColor(text[0], text[1], text[2])
			} else {
				doc.SetTextColor(0, 0, 0)
			}
			doc.CellFormat(widths[i], 5, CellText(cell), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	if err := doc.Error(); err != nil {
		return warning, err
	}
	return warning, doc.Output(w)
}

// placeLogo draws the logo top-left and reports whether it succeeded. The
// file is decoded first so a corrupt image cannot poison the document.
func placeLogo(doc *fpdf.Fpdf, logoPath string) bool {
	if logoPath == "" {
		return false
	}
	raw, err := os.ReadFile(logoPath)
	if err != nil {
		return false
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		return false
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(raw))
	if doc.Err() {
		doc.ClearError()
		return false
	}
	doc.ImageOptions("logo", pdfMargin, 0, 30, 30, false, opts, 0, "")
	return !doc.Err()
}

// scaleWidths spreads the report's relative column widths over the printable
// page width.
func scaleWidths(cols []Column, available float64) []float64 {
	var total float64
	for _, c := range cols {
		total += c.Width
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = c.Width / total * available
	}
	return widths
}
