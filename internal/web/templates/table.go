package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/bookstudio/webui/internal/table"
)

// badge classes per cell style, mirroring the list pages.
func cellClass(s table.CellStyle) string {
	switch s {
	case table.StyleIDBadge:
		return "badge bg-body-secondary text-body-emphasis border"
	case table.StyleCountSuccess:
		return "badge text-success-emphasis bg-success-subtle border border-success-subtle"
	case table.StyleCountWarning:
		return "badge text-warning-emphasis bg-warning-subtle border border-warning-subtle"
	}
	return ""
}

func statusClass(text string) string {
	if text == "Activo" {
		return "badge text-success-emphasis bg-success-subtle border border-success-subtle"
	}
	return "badge text-danger-emphasis bg-danger-subtle border border-danger-subtle"
}

// DataTable renders a filterable entity table. entity names the row action
// endpoints ("books", "students"); detailsTarget and editTarget are the
// modal ids the action buttons open.
func DataTable(entity string, columns []string, rows []table.Row, detailsTarget, editTarget string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<table class="table table-hover align-middle" id="%sTable"><thead><tr>`, esc(entity)); err != nil {
			return err
		}
		for _, col := range columns {
			if _, err := fmt.Fprintf(w, `<th scope="col">%s</th>`, esc(col)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<th scope="col"></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range rows {
			if err := tableRow(w, entity, row, detailsTarget, editTarget); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func tableRow(w io.Writer, entity string, row table.Row, detailsTarget, editTarget string) error {
	if _, err := fmt.Fprintf(w, `<tr data-key="%s">`, esc(row.Key)); err != nil {
		return err
	}
	for _, cell := range row.Cells {
		if err := tableCell(w, cell); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w,
		`<td class="text-center"><div class="d-inline-flex gap-2">`+
			`<button class="btn btn-sm btn-icon-hover" title="Detalles" data-bs-toggle="modal" data-bs-target="#%s" data-id="%d" data-formatted-id="%s"><i class="bi bi-info-circle"></i></button>`,
		esc(detailsTarget), row.ID, esc(row.Key)); err != nil {
		return err
	}
	if row.CanEdit {
		if _, err := fmt.Fprintf(w,
			`<button class="btn btn-sm btn-icon-hover" title="Editar" data-bs-toggle="modal" data-bs-target="#%s" data-id="%d" data-formatted-id="%s"><i class="bi bi-pencil"></i></button>`,
			esc(editTarget), row.ID, esc(row.Key)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div></td></tr>`)
	return err
}

func tableCell(w io.Writer, cell table.Cell) error {
	text := esc(cell.Text)
	switch {
	case cell.Style == table.StyleStatus:
		_, err := fmt.Fprintf(w, `<td class="text-center"><span class="%s">%s</span></td>`, statusClass(cell.Text), text)
		return err
	case cell.Extra != "":
		_, err := fmt.Fprintf(w, `<td>%s <span class="badge bg-body-tertiary text-body-emphasis border">%s</span></td>`, text, esc(cell.Extra))
		return err
	case cellClass(cell.Style) != "":
		_, err := fmt.Fprintf(w, `<td><span class="%s">%s</span></td>`, cellClass(cell.Style), text)
		return err
	default:
		_, err := fmt.Fprintf(w, `<td>%s</td>`, text)
		return err
	}
}
