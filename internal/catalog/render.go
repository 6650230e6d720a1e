package catalog

import (
	"strconv"

	"github.com/bookstudio/webui/internal/table"
)

// Column positions of the books table. Cells 1-6 can change on edit; the
// identifier badge in cell 0 never does.
const (
	colBookID = iota
	colTitle
	colAvailable
	colLoaned
	colAuthor
	colPublisher
	colStatus
)

// Columns returns the table headers of the books page.
func Columns() []string {
	return []string{
		"Código",
		"Título",
		"Ej. disp.",
		"Ej. prest.",
		"Autor - Código",
		"Editorial - Código",
		"Estado",
	}
}

// RoleAdmin is the role whose viewers see edit actions.
const RoleAdmin = "administrador"

// Row maps a book record to its table row. Pure: identical input yields an
// identical row. Edit controls render only for administrators.
func Row(b Book, role string) table.Row {
	return table.Row{
		Key:     b.FormattedBookID,
		ID:      b.BookID,
		CanEdit: role == RoleAdmin,
		Cells: []table.Cell{
			{Text: b.FormattedBookID, Style: table.StyleIDBadge},
			{Text: b.Title},
			{Text: strconv.Itoa(b.AvailableCopies), Style: table.StyleCountSuccess},
			{Text: strconv.Itoa(b.LoanedCopies), Style: table.StyleCountWarning},
			{Text: b.AuthorName, Extra: b.FormattedAuthorID},
			{Text: b.PublisherName, Extra: b.FormattedPublisherID},
			{Text: statusText(b.Status), Style: table.StyleStatus},
		},
	}
}

// Patch returns the cells whose values can change after an edit, keyed by
// column position. Applying it twice yields the same rendered content.
func Patch(b Book) map[int]table.Cell {
	return map[int]table.Cell{
		colTitle:     {Text: b.Title},
		colAvailable: {Text: strconv.Itoa(b.AvailableCopies), Style: table.StyleCountSuccess},
		colLoaned:    {Text: strconv.Itoa(b.LoanedCopies), Style: table.StyleCountWarning},
		colAuthor:    {Text: b.AuthorName, Extra: b.FormattedAuthorID},
		colPublisher: {Text: b.PublisherName, Extra: b.FormattedPublisherID},
		colStatus:    {Text: statusText(b.Status), Style: table.StyleStatus},
	}
}

func statusText(status string) string {
	if status == StatusActive {
		return "Activo"
	}
	return "Inactivo"
}
