package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bookstudio/webui/internal/forms"
)

func limaClock(t *testing.T) (*time.Location, func() time.Time) {
	t.Helper()
	loc, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	return loc, func() time.Time {
		return time.Date(2025, time.March, 10, 15, 0, 0, 0, loc)
	}
}

func validAddValues() forms.Values {
	return forms.Values{
		FieldAddTitle:       "Los ríos profundos",
		FieldAddTotalCopies: "10",
		FieldAddAuthor:      "4",
		FieldAddPublisher:   "2",
		FieldAddCourse:      "7",
		FieldAddReleaseDate: "1958-01-01",
		FieldAddGenre:       "3",
		FieldAddStatus:      StatusActive,
	}
}

func TestAddSchema_ValidValuesPass(t *testing.T) {
	loc, now := limaClock(t)
	if issues := AddSchema(loc, now).Validate(validAddValues()); len(issues) != 0 {
		t.Fatalf("Validate() = %v, want no issues", issues)
	}
}

func TestAddSchema_CollectsEveryIssue(t *testing.T) {
	loc, now := limaClock(t)
	vals := validAddValues()
	vals[FieldAddTitle] = "  "
	vals[FieldAddTotalCopies] = "1001"
	vals[FieldAddReleaseDate] = "2030-01-01"

	issues := AddSchema(loc, now).Validate(vals)
	if len(issues) != 3 {
		t.Fatalf("Validate() = %v, want 3 issues", issues)
	}
	keys := map[string]bool{}
	for _, is := range issues {
		keys[is.Field] = true
	}
	for _, want := range []string{FieldAddTitle, FieldAddTotalCopies, FieldAddReleaseDate} {
		if !keys[want] {
			t.Errorf("missing issue for %s", want)
		}
	}
}

func TestEditSchema_LoanedCopiesRaiseFloor(t *testing.T) {
	loc, now := limaClock(t)
	schema := EditSchema(loc, now, 5)

	vals := forms.Values{
		FieldEditTitle:       "Los ríos profundos",
		FieldEditTotalCopies: "4",
		FieldEditAuthor:      "4",
		FieldEditPublisher:   "2",
		FieldEditCourse:      "7",
		FieldEditReleaseDate: "1958-01-01",
		FieldEditGenre:       "3",
		FieldEditStatus:      StatusActive,
	}
	issues := schema.Validate(vals)
	if len(issues) != 1 || issues[0].Field != FieldEditTotalCopies {
		t.Fatalf("Validate() = %v, want single copy-count issue", issues)
	}

	vals[FieldEditTotalCopies] = "5"
	if issues := schema.Validate(vals); len(issues) != 0 {
		t.Fatalf("Validate() = %v, want total equal to loaned accepted", issues)
	}
}

func TestSerializeCreate(t *testing.T) {
	got, err := SerializeCreate(validAddValues())
	if err != nil {
		t.Fatalf("SerializeCreate: %v", err)
	}
	want := CreateBookPayload{
		Title:       "Los ríos profundos",
		TotalCopies: 10,
		AuthorID:    4,
		PublisherID: 2,
		CourseID:    7,
		ReleaseDate: "1958-01-01",
		GenreID:     3,
		Status:      StatusActive,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeCreate_BadIntegerFails(t *testing.T) {
	vals := validAddValues()
	vals[FieldAddAuthor] = "not-a-number"
	if _, err := SerializeCreate(vals); err == nil {
		t.Error("SerializeCreate() = nil error, want coercion failure")
	}
}

func TestSerializeUpdate_CarriesBookID(t *testing.T) {
	vals := forms.Values{
		FieldEditTitle:       "Todas las sangres",
		FieldEditTotalCopies: "12",
		FieldEditAuthor:      "4",
		FieldEditPublisher:   "2",
		FieldEditCourse:      "7",
		FieldEditReleaseDate: "1964-01-01",
		FieldEditGenre:       "3",
		FieldEditStatus:      StatusInactive,
	}
	got, err := SerializeUpdate(12)(vals)
	if err != nil {
		t.Fatalf("SerializeUpdate: %v", err)
	}
	payload, ok := got.(UpdateBookPayload)
	if !ok {
		t.Fatalf("payload type = %T, want UpdateBookPayload", got)
	}
	if payload.BookID != 12 {
		t.Errorf("BookID = %d, want the edited record's id", payload.BookID)
	}
	if payload.Status != StatusInactive {
		t.Errorf("Status = %q, want %q", payload.Status, StatusInactive)
	}
}

func TestEditValues_RoundTripThroughSchema(t *testing.T) {
	loc, now := limaClock(t)
	b := sampleBook()
	b.CourseID = 7
	b.GenreID = 3
	vals := EditValues(b)
	if issues := EditSchema(loc, now, b.LoanedCopies).Validate(vals); len(issues) != 0 {
		t.Fatalf("Validate() = %v, want a fetched record to pre-populate cleanly", issues)
	}
}
