package web

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/catalog"
	"github.com/bookstudio/webui/internal/export"
	"github.com/bookstudio/webui/internal/forms"
	"github.com/bookstudio/webui/internal/logging"
	"github.com/bookstudio/webui/internal/ui"
	"github.com/bookstudio/webui/internal/web/middleware"
	"github.com/bookstudio/webui/internal/web/templates"
)

// handleBooksPage loads the book list and renders the page. Options refresh
// once per page load.
func (s *Server) handleBooksPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := middleware.Role(ctx)
	rec := &ui.Recorder{}

	s.books.RefreshOptions(ctx)
	if err := s.books.LoadTable(ctx, role); err != nil {
		logging.FromContext(ctx).Error("load books", "error", err)
		rec.Error("Hubo un error al listar los libros.")
	}

	s.renderBooksPage(w, r, rec, templates.BooksPageData{})
}

// renderBooksPage fills in the shared page data (rows, options, role) and
// writes the response. data carries any open dialog state.
func (s *Server) renderBooksPage(w http.ResponseWriter, r *http.Request, rec *ui.Recorder, data templates.BooksPageData) {
	q := r.URL.Query().Get("q")
	data.Rows = s.books.Table().Filter(q)
	data.Options = s.books.Options()
	data.Query = q
	data.CanEdit = middleware.Role(r.Context()) == catalog.RoleAdmin

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Layout("Libros", rec.Toasts, templates.BooksPage(data)).Render(r.Context(), w)
}

// handleBookCreate runs the add-form submission state machine and re-renders
// the page. A dialog that stays open (validation failures) re-renders with
// the submitted values and field marks.
func (s *Server) handleBookCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := middleware.Role(ctx)
	if role != catalog.RoleAdmin {
		writeError(w, http.StatusForbidden, "administrator role required")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	rec := &ui.Recorder{}
	ctrl := s.books.NewAddController(role, rec, nil)
	vals := formValues(r, ctrl.Schema())

	ctrl.Dialog().BeginOpen()
	ctrl.Dialog().FinishOpen()
	out := ctrl.Submit(ctx, vals)

	data := templates.BooksPageData{}
	if out == forms.OutcomeInvalid || out == forms.OutcomeFieldErrors {
		data.AddDialog = ctrl.Dialog()
		data.AddValues = vals
	}
	s.renderBooksPage(w, r, rec, data)
}

// handleBookDetails fetches the authoritative record and renders the page
// with the details dialog open.
func (s *Server) handleBookDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	rec := &ui.Recorder{}
	data := templates.BooksPageData{}
	b, err := s.books.Get(ctx, id)
	switch {
	case api.IsNotFound(err):
		writeError(w, http.StatusNotFound, "book not found")
		return
	case err != nil:
		logging.FromContext(ctx).Error("book details", "book_id", id, "error", err)
		rec.Error("Hubo un error al cargar los datos del libro.")
	default:
		data.Details = &b
	}
	s.renderBooksPage(w, r, rec, data)
}

// handleBookEditPage fetches the record and renders the page with the edit
// dialog open and pre-populated.
func (s *Server) handleBookEditPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if middleware.Role(ctx) != catalog.RoleAdmin {
		writeError(w, http.StatusForbidden, "administrator role required")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	rec := &ui.Recorder{}
	data := templates.BooksPageData{}
	b, err := s.books.Get(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("book edit load", "book_id", id, "error", err)
		rec.Error("Hubo un error al cargar los datos del libro.")
	} else {
		data.Edit = &templates.BookEditData{Book: b, Values: catalog.EditValues(b)}
	}
	s.renderBooksPage(w, r, rec, data)
}

// handleBookUpdate runs the edit-form submission state machine against the
// freshly fetched record.
func (s *Server) handleBookUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := middleware.Role(ctx)
	if role != catalog.RoleAdmin {
		writeError(w, http.StatusForbidden, "administrator role required")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	rec := &ui.Recorder{}
	data := templates.BooksPageData{}

	// The rule table needs the loaned-copy floor of the current record.
	b, err := s.books.Get(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("book update load", "book_id", id, "error", err)
		rec.Error("Hubo un error al cargar los datos del libro.")
		s.renderBooksPage(w, r, rec, data)
		return
	}

	ctrl := s.books.NewEditController(b, rec, nil)
	vals := formValues(r, ctrl.Schema())

	ctrl.Dialog().BeginOpen()
	ctrl.Dialog().FinishOpen()
	out := ctrl.Submit(ctx, vals)

	if out == forms.OutcomeInvalid || out == forms.OutcomeFieldErrors {
		data.Edit = &templates.BookEditData{Book: b, Dialog: ctrl.Dialog(), Values: vals}
	}
	s.renderBooksPage(w, r, rec, data)
}

func (s *Server) handleBooksExportPDF(w http.ResponseWriter, r *http.Request) {
	rep := catalog.Report(s.books.Table().Filter(r.URL.Query().Get("q")))
	s.servePDF(w, r, rep)
}

func (s *Server) handleBooksExportExcel(w http.ResponseWriter, r *http.Request) {
	rep := catalog.Report(s.books.Table().Filter(r.URL.Query().Get("q")))
	s.serveExcel(w, r, rep)
}

// servePDF streams a generated PDF as a download. A missing logo degrades
// with a warning header instead of failing the export.
func (s *Server) servePDF(w http.ResponseWriter, r *http.Request, rep export.Report) {
	now := time.Now().In(s.cfg.Export.Location())

	var buf bytes.Buffer
	warning, err := export.PDF(&buf, rep, s.cfg.Export.LogoPath, now)
	if err != nil {
		logging.FromContext(r.Context()).Error("pdf export", "error", err)
		writeError(w, http.StatusInternalServerError, "Ocurrió un error al generar el PDF. Inténtalo nuevamente.")
		return
	}
	if warning {
		logging.FromContext(r.Context()).Warn("pdf export: logo unavailable", "path", s.cfg.Export.LogoPath)
		w.Header().Set("X-Export-Warning", "No se pudo cargar el logo. Se continuará sin él.")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename("pdf", now)+`"`)
	w.Write(buf.Bytes())
}

// serveExcel streams a generated workbook as a download.
func (s *Server) serveExcel(w http.ResponseWriter, r *http.Request, rep export.Report) {
	now := time.Now().In(s.cfg.Export.Location())

	var buf bytes.Buffer
	if err := export.Excel(&buf, rep, now); err != nil {
		logging.FromContext(r.Context()).Error("excel export", "error", err)
		writeError(w, http.StatusInternalServerError, "Ocurrió un error al generar el Excel.")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename("xlsx", now)+`"`)
	w.Write(buf.Bytes())
}

// formValues collects the posted values of every schema field.
func formValues(r *http.Request, schema *forms.Schema) forms.Values {
	vals := make(forms.Values, len(schema.Fields()))
	for _, f := range schema.Fields() {
		vals[f.Key] = r.PostFormValue(f.Key)
	}
	return vals
}
