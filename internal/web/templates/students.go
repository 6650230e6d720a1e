package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/bookstudio/webui/internal/forms"
	"github.com/bookstudio/webui/internal/options"
	"github.com/bookstudio/webui/internal/students"
	"github.com/bookstudio/webui/internal/table"
)

// StudentsPageData mirrors BooksPageData for the students page.
type StudentsPageData struct {
	Rows    []table.Row
	Options options.Snapshot
	Query   string

	AddDialog *forms.Dialog
	AddValues forms.Values

	Edit    *StudentEditData
	Details *students.Student
}

// StudentEditData is the open edit dialog for one fetched student.
type StudentEditData struct {
	Student students.Student
	Dialog  *forms.Dialog
	Values  forms.Values
}

// StudentsPage renders the student list with its add, edit and details
// dialogs. Every viewer can add and edit students.
func StudentsPage(data StudentsPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := listToolbar(w, "students", "Estudiantes", data.Query, true, "addStudentModal", "Agregar estudiante"); err != nil {
			return err
		}
		if err := DataTable("students", students.Columns(), data.Rows, "detailsStudentModal", "editStudentModal").Render(ctx, w); err != nil {
			return err
		}
		if err := studentAddModal(w, data); err != nil {
			return err
		}
		if data.Edit != nil {
			if err := studentEditModal(w, data.Options, data.Edit); err != nil {
				return err
			}
		}
		if data.Details != nil {
			if err := studentDetailsModal(w, data.Details); err != nil {
				return err
			}
		}
		return nil
	})
}

func studentAddModal(w io.Writer, data StudentsPageData) error {
	d, vals := data.AddDialog, data.AddValues
	if err := modalOpen(w, "addStudentModal", "Agregar estudiante", "addStudentForm", "/students"); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddDNI, "DNI", "text", vals.Get(students.FieldAddDNI), fieldStatus(d, students.FieldAddDNI)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddFirstName, "Nombres", "text", vals.Get(students.FieldAddFirstName), fieldStatus(d, students.FieldAddFirstName)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddLastName, "Apellidos", "text", vals.Get(students.FieldAddLastName), fieldStatus(d, students.FieldAddLastName)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddAddress, "Dirección", "text", vals.Get(students.FieldAddAddress), fieldStatus(d, students.FieldAddAddress)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddPhone, "Teléfono", "text", vals.Get(students.FieldAddPhone), fieldStatus(d, students.FieldAddPhone)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddEmail, "Correo electrónico", "text", vals.Get(students.FieldAddEmail), fieldStatus(d, students.FieldAddEmail)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldAddBirthDate, "Fecha de nacimiento", "date", vals.Get(students.FieldAddBirthDate), fieldStatus(d, students.FieldAddBirthDate)); err != nil {
		return err
	}
	if err := staticSelectField(w, students.FieldAddGender, "Género", students.GenderOptions(), vals.Get(students.FieldAddGender), fieldStatus(d, students.FieldAddGender)); err != nil {
		return err
	}
	if err := selectField(w, students.FieldAddFaculty, "Facultad", data.Options.Options(students.CategoryFaculties), vals.Get(students.FieldAddFaculty), fieldStatus(d, students.FieldAddFaculty)); err != nil {
		return err
	}
	if err := staticSelectField(w, students.FieldAddStatus, "Estado", students.StatusOptions(), vals.Get(students.FieldAddStatus), fieldStatus(d, students.FieldAddStatus)); err != nil {
		return err
	}
	return modalClose(w, "addStudentBtn", "Agregar")
}

func studentEditModal(w io.Writer, opts options.Snapshot, edit *StudentEditData) error {
	d, vals := edit.Dialog, edit.Values
	action := fmt.Sprintf("/students/%d", edit.Student.StudentID)
	if err := modalOpen(w, "editStudentModal", "Editar estudiante "+edit.Student.FormattedStudentID, "editStudentForm", action); err != nil {
		return err
	}
	// The DNI renders read-only; it is not part of the edit form.
	if _, err := fmt.Fprintf(w,
		`<div class="mb-3"><label class="form-label">DNI</label><input class="form-control" type="text" value="%s" disabled></div>`,
		esc(edit.Student.DNI)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldEditFirstName, "Nombres", "text", vals.Get(students.FieldEditFirstName), fieldStatus(d, students.FieldEditFirstName)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldEditLastName, "Apellidos", "text", vals.Get(students.FieldEditLastName), fieldStatus(d, students.FieldEditLastName)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldEditAddress, "Dirección", "text", vals.Get(students.FieldEditAddress), fieldStatus(d, students.FieldEditAddress)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldEditPhone, "Teléfono", "text", vals.Get(students.FieldEditPhone), fieldStatus(d, students.FieldEditPhone)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldEditEmail, "Correo electrónico", "text", vals.Get(students.FieldEditEmail), fieldStatus(d, students.FieldEditEmail)); err != nil {
		return err
	}
	if err := inputField(w, students.FieldEditBirthDate, "Fecha de nacimiento", "date", vals.Get(students.FieldEditBirthDate), fieldStatus(d, students.FieldEditBirthDate)); err != nil {
		return err
	}
	if err := staticSelectField(w, students.FieldEditGender, "Género", students.GenderOptions(), vals.Get(students.FieldEditGender), fieldStatus(d, students.FieldEditGender)); err != nil {
		return err
	}
	if err := selectField(w, students.FieldEditFaculty, "Facultad", opts.Options(students.CategoryFaculties), vals.Get(students.FieldEditFaculty), fieldStatus(d, students.FieldEditFaculty)); err != nil {
		return err
	}
	if err := staticSelectField(w, students.FieldEditStatus, "Estado", students.StatusOptions(), vals.Get(students.FieldEditStatus), fieldStatus(d, students.FieldEditStatus)); err != nil {
		return err
	}
	return modalClose(w, "editStudentBtn", "Guardar cambios")
}

func studentDetailsModal(w io.Writer, s *students.Student) error {
	if _, err := fmt.Fprintf(w,
		`<div class="modal fade" id="detailsStudentModal" tabindex="-1"><div class="modal-dialog modal-lg"><div class="modal-content">`+
			`<div class="modal-header"><h5 class="modal-title">Detalles del estudiante %s</h5>`+
			`<button type="button" class="btn-close" data-bs-dismiss="modal"></button></div><div class="modal-body"><dl class="row">`,
		esc(s.FormattedStudentID)); err != nil {
		return err
	}
	pairs := []struct{ label, value string }{
		{"DNI", s.DNI},
		{"Nombres", s.FirstName},
		{"Apellidos", s.LastName},
		{"Dirección", s.Address},
		{"Teléfono", s.Phone},
		{"Correo electrónico", s.Email},
		{"Fecha de nacimiento", formatDate(s.BirthDate)},
		{"Género", s.Gender},
		{"Facultad", s.FacultyName},
		{"Estado", statusLabel(s.Status)},
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, `<dt class="col-sm-4">%s</dt><dd class="col-sm-8">%s</dd>`, esc(p.label), esc(p.value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</dl></div></div></div></div>`)
	return err
}
