package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/catalog"
	"github.com/bookstudio/webui/internal/config"
	"github.com/bookstudio/webui/internal/students"
)

func testBook() catalog.Book {
	return catalog.Book{
		BookID:               12,
		FormattedBookID:      "L0012",
		Title:                "Los ríos profundos",
		AvailableCopies:      7,
		LoanedCopies:         3,
		TotalCopies:          10,
		AuthorID:             4,
		AuthorName:           "José María Arguedas",
		FormattedAuthorID:    "A0004",
		PublisherID:          2,
		PublisherName:        "Losada",
		FormattedPublisherID: "E0002",
		CourseID:             7,
		CourseName:           "Literatura",
		GenreID:              3,
		GenreName:            "Novela",
		ReleaseDate:          "1958-01-01",
		Status:               catalog.StatusActive,
	}
}

// newTestServer stands up a fake backend plus the web server under test.
func newTestServer(t *testing.T, backend http.Handler) *Server {
	t.Helper()
	be := httptest.NewServer(backend)
	t.Cleanup(be.Close)

	client, err := api.New(be.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.RequestTimeout = 10 * time.Second
	cfg.Backend.BaseURL = be.URL
	cfg.Session.RoleCookie = "bookstudio_role"
	cfg.Export.Timezone = "America/Lima"
	cfg.Rate.Enabled = false
	cfg.Rate.RequestsPerMinute = 100
	cfg.Rate.ExportLimit = 10
	cfg.Security.EnableCSP = true

	loc := cfg.Export.Location()
	books := catalog.NewModule(client, loc, nil)
	studentsMod := students.NewModule(client, loc, nil)
	return NewServer(cfg, books, studentsMod)
}

// backendStub answers the endpoints the pages touch.
func backendStub(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]catalog.Book{testBook()})
	})
	mux.HandleFunc("GET /books/select-options", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.SelectOptions{
			"authors": {{ID: 4, Name: "José María Arguedas"}},
		})
	})
	mux.HandleFunc("GET /books/12", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testBook())
	})
	mux.HandleFunc("GET /students", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /students/select-options", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.SelectOptions{
			"faculties": {{ID: 3, Name: "Ingeniería de Sistemas"}},
		})
	})
	return mux
}

func get(t *testing.T, srv *Server, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		req.AddCookie(&http.Cookie{Name: "bookstudio_role", Value: role})
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, srv *Server, path, role string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if role != "" {
		req.AddCookie(&http.Cookie{Name: "bookstudio_role", Value: role})
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestBooksPage(t *testing.T) {
	srv := newTestServer(t, backendStub(t))

	w := get(t, srv, "/books", catalog.RoleAdmin)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "L0012") {
		t.Error("page does not show the book row")
	}
	if !strings.Contains(body, "editBookModal") {
		t.Error("administrator page does not show edit actions")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("CSP header missing")
	}
}

func TestBooksPage_NonAdminHidesEdit(t *testing.T) {
	srv := newTestServer(t, backendStub(t))

	body := get(t, srv, "/books", "").Body.String()
	if strings.Contains(body, `data-bs-target="#editBookModal"`) {
		t.Error("anonymous viewer sees edit buttons")
	}
	if !strings.Contains(body, "L0012") {
		t.Error("anonymous viewer should still see the list")
	}
}

func TestBookCreate_RequiresAdmin(t *testing.T) {
	srv := newTestServer(t, backendStub(t))

	w := postForm(t, srv, "/books", "", url.Values{})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestBookCreate_InvalidFormReopensDialog(t *testing.T) {
	srv := newTestServer(t, backendStub(t))
	get(t, srv, "/books", catalog.RoleAdmin)

	form := url.Values{}
	form.Set(catalog.FieldAddTitle, "Los ríos profundos")
	// Everything else left empty.
	w := postForm(t, srv, "/books", catalog.RoleAdmin, form)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Este campo es obligatorio.") {
		t.Error("missing required-field feedback")
	}
	if !strings.Contains(body, `value="Los ríos profundos"`) {
		t.Error("submitted value was not preserved in the reopened dialog")
	}
}

func TestBookCreate_SuccessAppendsAndToasts(t *testing.T) {
	mux := backendStub(t)
	mux.HandleFunc("POST /books", func(w http.ResponseWriter, r *http.Request) {
		created := testBook()
		created.BookID = 13
		created.FormattedBookID = "L0013"
		data, _ := json.Marshal(created)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.Result{Success: true, Data: data})
	})
	srv := newTestServer(t, mux)
	get(t, srv, "/books", catalog.RoleAdmin)

	form := url.Values{}
	form.Set(catalog.FieldAddTitle, "Los ríos profundos")
	form.Set(catalog.FieldAddTotalCopies, "10")
	form.Set(catalog.FieldAddAuthor, "4")
	form.Set(catalog.FieldAddPublisher, "2")
	form.Set(catalog.FieldAddCourse, "7")
	form.Set(catalog.FieldAddReleaseDate, "1958-01-01")
	form.Set(catalog.FieldAddGenre, "3")
	form.Set(catalog.FieldAddStatus, catalog.StatusActive)

	body := postForm(t, srv, "/books", catalog.RoleAdmin, form).Body.String()
	if !strings.Contains(body, "Libro agregado exitosamente.") {
		t.Error("missing success toast")
	}
	if !strings.Contains(body, "L0013") {
		t.Error("new row not rendered")
	}
}

func TestStudentsPage_EmptyList(t *testing.T) {
	srv := newTestServer(t, backendStub(t))

	w := get(t, srv, "/students", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "addStudentModal") {
		t.Error("students page missing add dialog")
	}
}

func TestBooksExportPDF(t *testing.T) {
	srv := newTestServer(t, backendStub(t))
	get(t, srv, "/books", catalog.RoleAdmin)

	w := get(t, srv, "/books/export/pdf?q=", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Lista_de_libros_bookstudio_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("body is not a PDF document")
	}
}

func TestBooksExportExcel_FilterApplies(t *testing.T) {
	srv := newTestServer(t, backendStub(t))
	get(t, srv, "/books", catalog.RoleAdmin)

	w := get(t, srv, "/books/export/excel?q=no-match-at-all", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(w.Body)
	if len(body) == 0 {
		t.Error("empty workbook body")
	}
}

func TestExportRateLimit(t *testing.T) {
	be := httptest.NewServer(backendStub(t))
	t.Cleanup(be.Close)
	client, err := api.New(be.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 10 * time.Second
	cfg.Backend.BaseURL = be.URL
	cfg.Session.RoleCookie = "bookstudio_role"
	cfg.Export.Timezone = "America/Lima"
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 1000
	cfg.Rate.ExportLimit = 2
	loc := cfg.Export.Location()
	srv := NewServer(cfg, catalog.NewModule(client, loc, nil), students.NewModule(client, loc, nil))

	var last int
	for i := 0; i < 3; i++ {
		last = get(t, srv, "/books/export/pdf", "").Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third export status = %d, want 429", last)
	}
}
