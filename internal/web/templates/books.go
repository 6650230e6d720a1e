package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/bookstudio/webui/internal/catalog"
	"github.com/bookstudio/webui/internal/forms"
	"github.com/bookstudio/webui/internal/options"
	"github.com/bookstudio/webui/internal/table"
)

// BooksPageData carries everything the books page renders: the filtered
// rows, the dropdown snapshot, and the state of whichever dialog is open.
type BooksPageData struct {
	Rows    []table.Row
	Options options.Snapshot
	Query   string
	CanEdit bool

	// AddDialog and AddValues re-render the add form after a failed submit.
	// AddDialog may be nil when the dialog is pristine.
	AddDialog *forms.Dialog
	AddValues forms.Values

	// Edit is non-nil while the edit dialog is open for one book.
	Edit *BookEditData

	// Details is non-nil while the read-only details dialog is open.
	Details *catalog.Book
}

// BookEditData is the open edit dialog for one fetched book.
type BookEditData struct {
	Book   catalog.Book
	Dialog *forms.Dialog
	Values forms.Values
}

func fieldStatus(d *forms.Dialog, key string) forms.FieldStatus {
	if d == nil {
		return forms.FieldStatus{}
	}
	return d.FieldStatus(key)
}

// BooksPage renders the book list with its add, edit and details dialogs.
func BooksPage(data BooksPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := listToolbar(w, "books", "Libros", data.Query, data.CanEdit, "addBookModal", "Agregar libro"); err != nil {
			return err
		}
		if err := DataTable("books", catalog.Columns(), data.Rows, "detailsBookModal", "editBookModal").Render(ctx, w); err != nil {
			return err
		}
		if err := bookAddModal(w, data); err != nil {
			return err
		}
		if data.Edit != nil {
			if err := bookEditModal(w, data.Options, data.Edit); err != nil {
				return err
			}
		}
		if data.Details != nil {
			if err := bookDetailsModal(w, data.Details); err != nil {
				return err
			}
		}
		return nil
	})
}

// listToolbar renders the search box, the export buttons and, when allowed,
// the add button.
func listToolbar(w io.Writer, entity, heading, query string, canAdd bool, addTarget, addLabel string) error {
	if _, err := fmt.Fprintf(w,
		`<div class="d-flex justify-content-between align-items-center mb-3"><h4>%s</h4>`+
			`<div class="d-flex gap-2">`+
			`<form class="d-flex" method="get" action="/%[2]s">`+
			`<input class="form-control me-2" type="search" name="q" value="%[3]s" placeholder="Buscar">`+
			`<button class="btn btn-outline-secondary" type="submit">Buscar</button></form>`+
			`<a class="btn btn-outline-danger" id="generatePDF" href="/%[2]s/export/pdf?q=%[4]s">PDF</a>`+
			`<a class="btn btn-outline-success" id="generateExcel" href="/%[2]s/export/excel?q=%[4]s">Excel</a>`,
		esc(heading), esc(entity), esc(query), url.QueryEscape(query)); err != nil {
		return err
	}
	if canAdd {
		if _, err := fmt.Fprintf(w,
			`<button class="btn btn-primary" data-bs-toggle="modal" data-bs-target="#%s">%s</button>`,
			esc(addTarget), esc(addLabel)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div></div>`)
	return err
}

func bookAddModal(w io.Writer, data BooksPageData) error {
	d, vals := data.AddDialog, data.AddValues
	if err := modalOpen(w, "addBookModal", "Agregar libro", "addBookForm", "/books"); err != nil {
		return err
	}
	if err := inputField(w, catalog.FieldAddTitle, "Título", "text", vals.Get(catalog.FieldAddTitle), fieldStatus(d, catalog.FieldAddTitle)); err != nil {
		return err
	}
	if err := inputField(w, catalog.FieldAddTotalCopies, "Ejemplares totales", "number", vals.Get(catalog.FieldAddTotalCopies), fieldStatus(d, catalog.FieldAddTotalCopies)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldAddAuthor, "Autor", data.Options.Options(catalog.CategoryAuthors), vals.Get(catalog.FieldAddAuthor), fieldStatus(d, catalog.FieldAddAuthor)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldAddPublisher, "Editorial", data.Options.Options(catalog.CategoryPublishers), vals.Get(catalog.FieldAddPublisher), fieldStatus(d, catalog.FieldAddPublisher)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldAddCourse, "Curso", data.Options.Options(catalog.CategoryCourses), vals.Get(catalog.FieldAddCourse), fieldStatus(d, catalog.FieldAddCourse)); err != nil {
		return err
	}
	if err := inputField(w, catalog.FieldAddReleaseDate, "Fecha de lanzamiento", "date", vals.Get(catalog.FieldAddReleaseDate), fieldStatus(d, catalog.FieldAddReleaseDate)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldAddGenre, "Género", data.Options.Options(catalog.CategoryGenres), vals.Get(catalog.FieldAddGenre), fieldStatus(d, catalog.FieldAddGenre)); err != nil {
		return err
	}
	if err := staticSelectField(w, catalog.FieldAddStatus, "Estado", catalog.StatusOptions(), vals.Get(catalog.FieldAddStatus), fieldStatus(d, catalog.FieldAddStatus)); err != nil {
		return err
	}
	return modalClose(w, "addBookBtn", "Agregar")
}

func bookEditModal(w io.Writer, opts options.Snapshot, edit *BookEditData) error {
	d, vals := edit.Dialog, edit.Values
	action := fmt.Sprintf("/books/%d", edit.Book.BookID)
	if err := modalOpen(w, "editBookModal", "Editar libro "+edit.Book.FormattedBookID, "editBookForm", action); err != nil {
		return err
	}
	if err := inputField(w, catalog.FieldEditTitle, "Título", "text", vals.Get(catalog.FieldEditTitle), fieldStatus(d, catalog.FieldEditTitle)); err != nil {
		return err
	}
	if err := inputField(w, catalog.FieldEditTotalCopies, "Ejemplares totales", "number", vals.Get(catalog.FieldEditTotalCopies), fieldStatus(d, catalog.FieldEditTotalCopies)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldEditAuthor, "Autor", opts.Options(catalog.CategoryAuthors), vals.Get(catalog.FieldEditAuthor), fieldStatus(d, catalog.FieldEditAuthor)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldEditPublisher, "Editorial", opts.Options(catalog.CategoryPublishers), vals.Get(catalog.FieldEditPublisher), fieldStatus(d, catalog.FieldEditPublisher)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldEditCourse, "Curso", opts.Options(catalog.CategoryCourses), vals.Get(catalog.FieldEditCourse), fieldStatus(d, catalog.FieldEditCourse)); err != nil {
		return err
	}
	if err := inputField(w, catalog.FieldEditReleaseDate, "Fecha de lanzamiento", "date", vals.Get(catalog.FieldEditReleaseDate), fieldStatus(d, catalog.FieldEditReleaseDate)); err != nil {
		return err
	}
	if err := selectField(w, catalog.FieldEditGenre, "Género", opts.Options(catalog.CategoryGenres), vals.Get(catalog.FieldEditGenre), fieldStatus(d, catalog.FieldEditGenre)); err != nil {
		return err
	}
	if err := staticSelectField(w, catalog.FieldEditStatus, "Estado", catalog.StatusOptions(), vals.Get(catalog.FieldEditStatus), fieldStatus(d, catalog.FieldEditStatus)); err != nil {
		return err
	}
	return modalClose(w, "editBookBtn", "Guardar cambios")
}

func bookDetailsModal(w io.Writer, b *catalog.Book) error {
	if _, err := fmt.Fprintf(w,
		`<div class="modal fade" id="detailsBookModal" tabindex="-1"><div class="modal-dialog modal-lg"><div class="modal-content">`+
			`<div class="modal-header"><h5 class="modal-title">Detalles del libro %s</h5>`+
			`<button type="button" class="btn-close" data-bs-dismiss="modal"></button></div><div class="modal-body"><dl class="row">`,
		esc(b.FormattedBookID)); err != nil {
		return err
	}
	pairs := []struct{ label, value string }{
		{"Título", b.Title},
		{"Ejemplares disponibles", fmt.Sprintf("%d", b.AvailableCopies)},
		{"Ejemplares prestados", fmt.Sprintf("%d", b.LoanedCopies)},
		{"Ejemplares totales", fmt.Sprintf("%d", b.TotalCopies)},
		{"Autor", b.AuthorName + " - " + b.FormattedAuthorID},
		{"Editorial", b.PublisherName + " - " + b.FormattedPublisherID},
		{"Curso", b.CourseName},
		{"Fecha de lanzamiento", formatDate(b.ReleaseDate)},
		{"Género", b.GenreName},
		{"Estado", statusLabel(b.Status)},
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, `<dt class="col-sm-4">%s</dt><dd class="col-sm-8">%s</dd>`, esc(p.label), esc(p.value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</dl></div></div></div></div>`)
	return err
}

func statusLabel(status string) string {
	if status == "activo" {
		return "Activo"
	}
	return "Inactivo"
}
