package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/forms"
	"github.com/bookstudio/webui/internal/logging"
	"github.com/bookstudio/webui/internal/students"
	"github.com/bookstudio/webui/internal/ui"
	"github.com/bookstudio/webui/internal/web/templates"
)

// handleStudentsPage loads the student list and renders the page.
func (s *Server) handleStudentsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec := &ui.Recorder{}

	s.students.RefreshOptions(ctx)
	if err := s.students.LoadTable(ctx); err != nil {
		logging.FromContext(ctx).Error("load students", "error", err)
		rec.Error("Hubo un error al listar los estudiantes.")
	}

	s.renderStudentsPage(w, r, rec, templates.StudentsPageData{})
}

func (s *Server) renderStudentsPage(w http.ResponseWriter, r *http.Request, rec *ui.Recorder, data templates.StudentsPageData) {
	q := r.URL.Query().Get("q")
	data.Rows = s.students.Table().Filter(q)
	data.Options = s.students.Options()
	data.Query = q

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Layout("Estudiantes", rec.Toasts, templates.StudentsPage(data)).Render(r.Context(), w)
}

// handleStudentCreate runs the add-form submission state machine.
func (s *Server) handleStudentCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	rec := &ui.Recorder{}
	ctrl := s.students.NewAddController(rec, nil)
	vals := formValues(r, ctrl.Schema())

	ctrl.Dialog().BeginOpen()
	ctrl.Dialog().FinishOpen()
	out := ctrl.Submit(ctx, vals)

	data := templates.StudentsPageData{}
	if out == forms.OutcomeInvalid || out == forms.OutcomeFieldErrors {
		data.AddDialog = ctrl.Dialog()
		data.AddValues = vals
	}
	s.renderStudentsPage(w, r, rec, data)
}

// handleStudentDetails fetches the authoritative record and renders the
// page with the details dialog open.
func (s *Server) handleStudentDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	rec := &ui.Recorder{}
	data := templates.StudentsPageData{}
	st, err := s.students.Get(ctx, id)
	switch {
	case api.IsNotFound(err):
		writeError(w, http.StatusNotFound, "student not found")
		return
	case err != nil:
		logging.FromContext(ctx).Error("student details", "student_id", id, "error", err)
		rec.Error("Hubo un error al cargar los datos del estudiante.")
	default:
		data.Details = &st
	}
	s.renderStudentsPage(w, r, rec, data)
}

// handleStudentEditPage fetches the record and renders the page with the
// edit dialog open and pre-populated.
func (s *Server) handleStudentEditPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	rec := &ui.Recorder{}
	data := templates.StudentsPageData{}
	st, err := s.students.Get(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("student edit load", "student_id", id, "error", err)
		rec.Error("Hubo un error al cargar los datos del estudiante.")
	} else {
		data.Edit = &templates.StudentEditData{Student: st, Values: students.EditValues(st)}
	}
	s.renderStudentsPage(w, r, rec, data)
}

// handleStudentUpdate runs the edit-form submission state machine against
// the freshly fetched record.
func (s *Server) handleStudentUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	rec := &ui.Recorder{}
	data := templates.StudentsPageData{}

	st, err := s.students.Get(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("student update load", "student_id", id, "error", err)
		rec.Error("Hubo un error al cargar los datos del estudiante.")
		s.renderStudentsPage(w, r, rec, data)
		return
	}

	ctrl := s.students.NewEditController(st, rec, nil)
	vals := formValues(r, ctrl.Schema())

	ctrl.Dialog().BeginOpen()
	ctrl.Dialog().FinishOpen()
	out := ctrl.Submit(ctx, vals)

	if out == forms.OutcomeInvalid || out == forms.OutcomeFieldErrors {
		data.Edit = &templates.StudentEditData{Student: st, Dialog: ctrl.Dialog(), Values: vals}
	}
	s.renderStudentsPage(w, r, rec, data)
}

func (s *Server) handleStudentsExportPDF(w http.ResponseWriter, r *http.Request) {
	rep := students.Report(s.students.Table().Filter(r.URL.Query().Get("q")))
	s.servePDF(w, r, rep)
}

func (s *Server) handleStudentsExportExcel(w http.ResponseWriter, r *http.Request) {
	rep := students.Report(s.students.Table().Filter(r.URL.Query().Get("q")))
	s.serveExcel(w, r, rep)
}
