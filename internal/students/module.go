package students

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

// entityPath is the students resource under the backend base URL.
const entityPath = "students"

// CategoryFaculties is the only backend-served option list of this page;
// gender and status are fixed.
const CategoryFaculties = "faculties"

// GenderOptions returns the fixed gender dropdown entries.
func GenderOptions() []ui.SelectItem {
	return []ui.SelectItem{
		{Value: GenderMale, Label: GenderMale},
		{Value: GenderFemale, Label: GenderFemale},
	}
}

// StatusOptions returns the fixed status dropdown entries.
func StatusOptions() []ui.SelectItem {
	return []ui.SelectItem{
		{Value: StatusActive, Label: "Activo"},
		{Value: StatusInactive, Label: "Inactivo"},
	}
}

// Module composes the students page: the rendered table, the faculty option
// cache, and factories for the add/edit submission controllers.
type Module struct {
	client *api.Client
	cache  *options.Cache
	table  *table.Table
	loc    *time.Location
	now    func() time.Time
}

// NewModule wires a students module against the backend client.
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

// RefreshOptions performs the once-per-page-load faculty-list fetch.
// Failure degrades silently to an empty dropdown.
func (m *Module) RefreshOptions(ctx context.Context) error {
	return m.cache.Refresh(ctx)
}

// Options returns the current reference-list snapshot for dialog population.
func (m *Module) Options() options.Snapshot {
	return m.cache.Snapshot()
}

// LoadTable fetches the student list and renders it into the table. The
// backend's empty-list answer (204) yields an empty table, not an error.
func (m *Module) LoadTable(ctx context.Context) error {
	var list []Student
	if err := m.client.Get(ctx, &list, entityPath); err != nil {
		if api.IsNoContent(err) {
			m.table.Load(nil)
			return nil
		}
		return fmt.Errorf("load students: %w", err)
	}

	rows := make([]table.Row, len(list))
	for i, s := range list {
		rows[i] = Row(s)
	}
	m.table.Load(rows)
	return nil
}

// Get fetches the authoritative record for a details or edit dialog.
func (m *Module) Get(ctx context.Context, id int64) (Student, error) {
	var s Student
	if err := m.client.Get(ctx, &s, entityPath, strconv.FormatInt(id, 10)); err != nil {
		return Student{}, fmt.Errorf("load student %d: %w", id, err)
	}
	return s, nil
}

// NewAddController builds the submission controller of the add form.
func (m *Module) NewAddController(notifier ui.Notifier, button ui.Control) *forms.Controller {
	return forms.NewController(forms.ControllerConfig{
		Name:      "addStudentForm",
		Schema:    AddSchema(m.loc, m.now),
		Dialog:    forms.NewDialog(),
		Serialize: SerializeCreate,
		Send: func(ctx context.Context, payload any) (*api.Result, error) {
			return m.client.Create(ctx, payload, entityPath)
		},
		Apply: func(data json.RawMessage) error {
			s, err := DecodeStudent(data)
			if err != nil {
				return err
			}
			m.table.Append(Row(s))
			return nil
		},
		Notifier:   notifier,
		Button:     button,
		SuccessMsg: "Estudiante agregado exitosamente.",
		FailureMsg: "Hubo un error al agregar el estudiante.",
	})
}

// NewEditController builds the submission controller of the edit form for
// one fetched student.
func (m *Module) NewEditController(s Student, notifier ui.Notifier, button ui.Control) *forms.Controller {
	return forms.NewController(forms.ControllerConfig{
		Name:      "editStudentForm",
		Schema:    EditSchema(m.loc, m.now),
		Dialog:    forms.NewDialog(),
		Serialize: SerializeUpdate(s.StudentID),
		Send: func(ctx context.Context, payload any) (*api.Result, error) {
			return m.client.Update(ctx, payload, entityPath)
		},
		Apply: func(data json.RawMessage) error {
			updated, err := DecodeStudent(data)
			if err != nil {
				return err
			}
			m.table.Patch(updated.FormattedStudentID, Patch(updated))
			return nil
		},
		Notifier:   notifier,
		Button:     button,
		SuccessMsg: "Estudiante actualizado exitosamente.",
		FailureMsg: "Hubo un error al actualizar el estudiante.",
	})
}

// EditValues pre-populates the edit form from the authoritative record.
func EditValues(s Student) forms.Values {
	return forms.Values{
		FieldEditFirstName: s.FirstName,
		FieldEditLastName:  s.LastName,
		FieldEditAddress:   s.Address,
		FieldEditPhone:     s.Phone,
		FieldEditEmail:     s.Email,
		FieldEditBirthDate: s.BirthDate,
		FieldEditGender:    s.Gender,
		FieldEditFaculty:   strconv.FormatInt(s.FacultyID, 10),
		FieldEditStatus:    s.Status,
	}
}
