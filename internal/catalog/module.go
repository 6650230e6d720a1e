package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/forms"
	"github.com/bookstudio/webui/internal/options"
	"github.com/bookstudio/webui/internal/table"
	"github.com/bookstudio/webui/internal/ui"
)

// entityPath is the books resource under the backend base URL.
const entityPath = "books"

// Option list categories served by GET books/select-options.
const (
	CategoryAuthors    = "authors"
	CategoryPublishers = "publishers"
	CategoryCourses    = "courses"
	CategoryGenres     = "genres"
)

// StatusOptions returns the fixed status dropdown entries.
func StatusOptions() []ui.SelectItem {
	return []ui.SelectItem{
		{Value: StatusActive, Label: "Activo"},
		{Value: StatusInactive, Label: "Inactivo"},
	}
}

// Module composes the books page: the rendered table, the option cache for
// its dropdowns, and factories for the add/edit submission controllers.
type Module struct {
	client *api.Client
	cache  *options.Cache
	table  *table.Table
	loc    *time.Location
	now    func() time.Time
}

// NewModule wires a books module against the backend client. loc is the
// reference timezone for date validation; now may be nil outside tests.
func NewModule(client *api.Client, loc *time.Location, now func() time.Time) *Module {
	return &Module{
		client: client,
		cache:  options.NewCache(client, entityPath),
		table:  table.New(Columns()...),
		loc:    loc,
		now:    now,
	}
}

// Table returns the page's table model.
func (m *Module) Table() *table.Table {
	return m.table
}

// RefreshOptions performs the once-per-page-load reference-list fetch.
// Failure degrades silently to empty dropdowns.
func (m *Module) RefreshOptions(ctx context.Context) error {
	return m.cache.Refresh(ctx)
}

// Options returns the current reference-list snapshot for dialog population.
func (m *Module) Options() options.Snapshot {
	return m.cache.Snapshot()
}

// LoadTable fetches the book list and renders it into the table. The
// backend's empty-list answer (204) yields an empty table, not an error.
func (m *Module) LoadTable(ctx context.Context, role string) error {
	var books []Book
	if err := m.client.Get(ctx, &books, entityPath); err != nil {
		if api.IsNoContent(err) {
			m.table.Load(nil)
			return nil
		}
		return fmt.Errorf("load books: %w", err)
	}

	rows := make([]table.Row, len(books))
	for i, b := range books {
		rows[i] = Row(b, role)
	}
	m.table.Load(rows)
	return nil
}

// Get fetches the authoritative record for a details or edit dialog; the
// row's displayed values are never trusted.
func (m *Module) Get(ctx context.Context, id int64) (Book, error) {
	var b Book
	if err := m.client.Get(ctx, &b, entityPath, strconv.FormatInt(id, 10)); err != nil {
		return Book{}, fmt.Errorf("load book %d: %w", id, err)
	}
	return b, nil
}

// NewAddController builds the submission controller of the add form.
// role decides whether the appended row carries edit actions.
func (m *Module) NewAddController(role string, notifier ui.Notifier, button ui.Control) *forms.Controller {
	return forms.NewController(forms.ControllerConfig{
		Name:      "addBookForm",
		Schema:    AddSchema(m.loc, m.now),
		Dialog:    forms.NewDialog(),
		Serialize: SerializeCreate,
		Send: func(ctx context.Context, payload any) (*api.Result, error) {
			return m.client.Create(ctx, payload, entityPath)
		},
		Apply: func(data json.RawMessage) error {
			b, err := DecodeBook(data)
			if err != nil {
				return err
			}
			m.table.Append(Row(b, role))
			return nil
		},
		Notifier:   notifier,
		Button:     button,
		SuccessMsg: "Libro agregado exitosamente.",
		FailureMsg: "Hubo un error al agregar el libro.",
	})
}

// NewEditController builds the submission controller of the edit form for
// one fetched book. The rule table embeds the record's loaned-copy floor.
func (m *Module) NewEditController(b Book, notifier ui.Notifier, button ui.Control) *forms.Controller {
	return forms.NewController(forms.ControllerConfig{
		Name:      "editBookForm",
		Schema:    EditSchema(m.loc, m.now, b.LoanedCopies),
		Dialog:    forms.NewDialog(),
		Serialize: SerializeUpdate(b.BookID),
		Send: func(ctx context.Context, payload any) (*api.Result, error) {
			return m.client.Update(ctx, payload, entityPath)
		},
		Apply: func(data json.RawMessage) error {
			updated, err := DecodeBook(data)
			if err != nil {
				return err
			}
			// Missing row: tolerable no-op, the row exists after editing a
			// listed entity.
			m.table.Patch(updated.FormattedBookID, Patch(updated))
			return nil
		},
		Notifier:   notifier,
		Button:     button,
		SuccessMsg: "Libro actualizado exitosamente.",
		FailureMsg: "Hubo un error al actualizar el libro.",
	})
}

// EditValues pre-populates the edit form from the authoritative record.
func EditValues(b Book) forms.Values {
	return forms.Values{
		FieldEditTitle:       b.Title,
		FieldEditTotalCopies: strconv.Itoa(b.TotalCopies),
		FieldEditAuthor:      strconv.FormatInt(b.AuthorID, 10),
		FieldEditPublisher:   strconv.FormatInt(b.PublisherID, 10),
		FieldEditCourse:      strconv.FormatInt(b.CourseID, 10),
		FieldEditReleaseDate: b.ReleaseDate,
		FieldEditGenre:       strconv.FormatInt(b.GenreID, 10),
		FieldEditStatus:      b.Status,
	}
}
