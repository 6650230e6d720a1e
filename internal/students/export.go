package students

import (
	"github.com/bookstudio/webui/internal/export"
	"github.com/bookstudio/webui/internal/table"
)

// Report wraps a filtered view of the students table for the PDF and Excel
// generators.
func Report(rows []table.Row) export.Report {
	return export.Report{
		Title: "Lista de estudiantes",
		Sheet: "Estudiantes",
		Stem:  "Lista_de_estudiantes_bookstudio_",
		Columns: []export.Column{
			{Header: "Código", Width: 10},
			{Header: "DNI", Width: 15},
			{Header: "Nombres", Width: 30},
			{Header: "Apellidos", Width: 30},
			{Header: "Teléfono", Width: 20},
			{Header: "Correo electrónico", Width: 30},
			{Header: "Estado", Width: 15},
		},
		Rows: rows,
	}
}
