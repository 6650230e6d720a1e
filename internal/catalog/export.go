package catalog

import (
	"github.com/bookstudio/webui/internal/export"
	"github.com/bookstudio/webui/internal/table"
)

// Report wraps a filtered view of the books table for the PDF and Excel
// generators.
func Report(rows []table.Row) export.Report {
	return export.Report{
		Title: "Lista de libros",
		Sheet: "Libros",
		Stem:  "Lista_de_libros_bookstudio_",
		Columns: []export.Column{
			{Header: "Código", Width: 10},
			{Header: "Título", Width: 40},
			{Header: "Ej. disp.", Width: 10},
			{Header: "Ej. prest.", Width: 10},
			{Header: "Autor - Código", Width: 50},
			{Header: "Editorial - Código", Width: 50},
			{Header: "Estado", Width: 15},
		},
		Rows: rows,
	}
}
