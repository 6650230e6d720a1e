package students

import "github.com/bookstudio/webui/internal/table"

// Column positions of the students table. The identifier and DNI badges in
// cells 0 and 1 never change; cells 2-6 can change on edit.
const (
	colStudentID = iota
	colDNI
	colFirstName
	colLastName
	colPhone
	colEmail
	colStatus
)

// Columns returns the table headers of the students page.
func Columns() []string {
	return []string{
		"Código",
		"DNI",
		"Nombres",
		"Apellidos",
		"Teléfono",
		"Correo electrónico",
		"Estado",
	}
}

// Row maps a student record to its table row. Unlike books, every viewer
// sees edit actions on students.
func Row(s Student) table.Row {
	return table.Row{
		Key:     s.FormattedStudentID,
		ID:      s.StudentID,
		CanEdit: true,
		Cells: []table.Cell{
			{Text: s.FormattedStudentID, Style: table.StyleIDBadge},
			{Text: s.DNI, Style: table.StyleIDBadge},
			{Text: s.FirstName},
			{Text: s.LastName},
			{Text: s.Phone, Style: table.StyleIDBadge},
			{Text: s.Email},
			{Text: statusText(s.Status), Style: table.StyleStatus},
		},
	}
}

// Patch returns the cells whose values can change after an edit, keyed by
// column position. The DNI cell is deliberately absent.
func Patch(s Student) map[int]table.Cell {
	return map[int]table.Cell{
		colFirstName: {Text: s.FirstName},
		colLastName:  {Text: s.LastName},
		colPhone:     {Text: s.Phone, Style: table.StyleIDBadge},
		colEmail:     {Text: s.Email},
		colStatus:    {Text: statusText(s.Status), Style: table.StyleStatus},
	}
}

func statusText(status string) string {
	if status == StatusActive {
		return "Activo"
	}
	return "Inactivo"
}
