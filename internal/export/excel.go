package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// headerRowIndex is the spreadsheet row carrying the column headers; data
// starts right below it. Rows 1-2 hold the title and the date line, row 3
// stays blank.
const headerRowIndex = 4

// Excel writes the report as an .xlsx workbook: merged title and date rows,
// a black header band, then one styled row per table row.
func Excel(w io.Writer, r Report, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := r.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(r.Columns))
	if err != nil {
		return err
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", r.Title+" - BookStudio")
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 14, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return fmt.Errorf("merge date line: %w", err)
	}
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Fecha: %s  Hora: %s", spanishDate(now), clockTime(now)))
	dateStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	f.SetCellStyle(sheet, "A2", "A2", dateStyle)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"000000"}},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "top", Color: "FFFFFF", Style: 1},
			{Type: "bottom", Color: "FFFFFF", Style: 1},
			{Type: "left", Color: "FFFFFF", Style: 1},
			{Type: "right", Color: "FFFFFF", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	for i, col := range r.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return fmt.Errorf("column width %s: %w", name, err)
		}
		axis := fmt.Sprintf("%s%d", name, headerRowIndex)
		f.SetCellValue(sheet, axis, col.Header)
		f.SetCellStyle(sheet, axis, axis, headerStyle)
	}

	// One style per distinct color pair, cached across rows.
	styles := map[string]int{}
	coloredStyle := func(text, fill [3]int) (int, error) {
		key := hex(text) + hex(fill)
		if id, ok := styles[key]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: hex(text)},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex(fill)}},
		})
		if err != nil {
			return 0, err
		}
		styles[key] = id
		return id, nil
	}

	for rowIdx, row := range r.Rows {
		for colIdx, cell := range row.Cells {
			if colIdx >= len(r.Columns) {
				break
			}
			name, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return err
			}
			axis := fmt.Sprintf("%s%d", name, headerRowIndex+1+rowIdx)
			f.SetCellValue(sheet, axis, CellText(cell))
			if text, fill, ok := cellColor(cell); ok {
				id, err := coloredStyle(text, fill)
				if err != nil {
					return err
				}
				f.SetCellStyle(sheet, axis, axis, id)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
