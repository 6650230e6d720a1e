// Package export generates the PDF and Excel downloads of a table view.
// Both generators read the filtered rows the viewer currently sees; they
// never refetch from the backend.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/bookstudio/webui/internal/table"
)

// Column pairs a header with its spreadsheet width.
type Column struct {
	Header string
	Width  float64
}

// Report is one exportable table view. Rows are the rows to print, already
// narrowed by whatever filter the viewer applied.
type Report struct {
	// Title is the document heading ("Lista de libros").
	Title string

	// Sheet names the Excel worksheet ("Libros").
	Sheet string

	// Stem starts the download filename ("Lista_de_libros_bookstudio_").
	Stem string

	Columns []Column
	Rows    []table.Row
}

// Filename builds the download name for ext ("pdf" or "xlsx") with the
// generation date embedded, whitespace turned to underscores.
func (r Report) Filename(ext string, now time.Time) string {
	date := strings.ReplaceAll(spanishDate(now), " ", "_")
	return fmt.Sprintf("%s%s.%s", r.Stem, date, ext)
}

// CellText flattens a cell to its export text. Composite cells print as
// "name - code", matching the on-screen badge pair.
func CellText(c table.Cell) string {
	if c.Extra != "" {
		return c.Text + " - " + c.Extra
	}
	return c.Text
}

// cellColor returns the text and fill colors of a cell in the generated
// documents. ok is false for plain black-on-white cells.
func cellColor(c table.Cell) (text, fill [3]int, ok bool) {
	switch c.Style {
	case table.StyleCountSuccess:
		return [3]int{0, 128, 0}, [3]int{230, 242, 230}, true
	case table.StyleCountWarning:
		return [3]int{255, 193, 7}, [3]int{255, 248, 225}, true
	case table.StyleStatus:
		if c.Text == "Activo" {
			return [3]int{0, 128, 0}, [3]int{230, 242, 230}, true
		}
		return [3]int{255, 0, 0}, [3]int{255, 230, 230}, true
	}
	return text, fill, false
}

func hex(rgb [3]int) string {
	return fmt.Sprintf("%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}

// spanishMonths holds the lowercase es-ES month names used in headings and
// filenames.
var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// spanishDate renders now as "10 de marzo de 2025".
func spanishDate(now time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", now.Day(), spanishMonths[now.Month()-1], now.Year())
}

// clockTime renders now as a 12-hour "03:04 PM" stamp.
func clockTime(now time.Time) string {
	hour := now.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if now.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour, now.Minute(), suffix)
}
