package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bookstudio/webui/internal/forms"
)

// Field keys of the add form. Backend field errors arrive keyed by these
// names, so they must match what the backend reports.
const (
	FieldAddTitle       = "addBookTitle"
	FieldAddTotalCopies = "addBookTotalCopies"
	FieldAddAuthor      = "addBookAuthor"
	FieldAddPublisher   = "addBookPublisher"
	FieldAddCourse      = "addBookCourse"
	FieldAddReleaseDate = "addReleaseDate"
	FieldAddGenre       = "addBookGenre"
	FieldAddStatus      = "addBookStatus"
)

// Field keys of the edit form.
const (
	FieldEditTitle       = "editBookTitle"
	FieldEditTotalCopies = "editBookTotalCopies"
	FieldEditAuthor      = "editBookAuthor"
	FieldEditPublisher   = "editBookPublisher"
	FieldEditCourse      = "editBookCourse"
	FieldEditReleaseDate = "editReleaseDate"
	FieldEditGenre       = "editBookGenre"
	FieldEditStatus      = "editBookStatus"
)

// selectUnavailableMsg is the wrapper feedback for edit-dialog selects whose
// stored option may have gone away.
const selectUnavailableMsg = "Opción seleccionada inactiva o no existente."

// AddSchema is the rule table of the add-book form. loc is the reference
// timezone for the release-date bound; now may be nil (tests inject a clock).
func AddSchema(loc *time.Location, now func() time.Time) *forms.Schema {
	return forms.NewSchema(
		forms.Field{Key: FieldAddTitle, Kind: forms.KindInput, Rule: forms.Text("título")},
		forms.Field{Key: FieldAddTotalCopies, Kind: forms.KindInput, Rule: forms.TotalCopies()},
		forms.Field{Key: FieldAddAuthor, Kind: forms.KindSelect},
		forms.Field{Key: FieldAddPublisher, Kind: forms.KindSelect},
		forms.Field{Key: FieldAddCourse, Kind: forms.KindSelect},
		forms.Field{Key: FieldAddReleaseDate, Kind: forms.KindInput, Rule: forms.PastDate(loc, now)},
		forms.Field{Key: FieldAddGenre, Kind: forms.KindSelect},
		forms.Field{Key: FieldAddStatus, Kind: forms.KindSelect},
	)
}

// EditSchema is the rule table of the edit-book form. The copy-count lower
// bound rises to the copies already on loan, so totals can never drop below
// what is lent out.
func EditSchema(loc *time.Location, now func() time.Time, loanedCopies int) *forms.Schema {
	min := loanedCopies
	if min < 1 {
		min = 1
	}
	return forms.NewSchema(
		forms.Field{Key: FieldEditTitle, Kind: forms.KindInput, Rule: forms.Text("título")},
		forms.Field{Key: FieldEditTotalCopies, Kind: forms.KindInput, Rule: forms.TotalCopiesInRange(min, 1000)},
		forms.Field{Key: FieldEditAuthor, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
		forms.Field{Key: FieldEditPublisher, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
		forms.Field{Key: FieldEditCourse, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
		forms.Field{Key: FieldEditReleaseDate, Kind: forms.KindInput, Rule: forms.PastDate(loc, now)},
		forms.Field{Key: FieldEditGenre, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
		forms.Field{Key: FieldEditStatus, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
	)
}

// SerializeCreate maps validated add-form values onto the POST payload,
// coercing ids and counts to integers.
func SerializeCreate(vals forms.Values) (any, error) {
	totalCopies, err := atoi(vals.Get(FieldAddTotalCopies), "totalCopies")
	if err != nil {
		return nil, err
	}
	authorID, err := atoi64(vals.Get(FieldAddAuthor), "authorId")
	if err != nil {
		return nil, err
	}
	publisherID, err := atoi64(vals.Get(FieldAddPublisher), "publisherId")
	if err != nil {
		return nil, err
	}
	courseID, err := atoi64(vals.Get(FieldAddCourse), "courseId")
	if err != nil {
		return nil, err
	}
	genreID, err := atoi64(vals.Get(FieldAddGenre), "genreId")
	if err != nil {
		return nil, err
	}

	return CreateBookPayload{
		Title:       vals.Get(FieldAddTitle),
		TotalCopies: totalCopies,
		AuthorID:    authorID,
		PublisherID: publisherID,
		CourseID:    courseID,
		ReleaseDate: vals.Get(FieldAddReleaseDate),
		GenreID:     genreID,
		Status:      vals.Get(FieldAddStatus),
	}, nil
}

// SerializeUpdate maps validated edit-form values onto the PUT payload for
// the book being edited.
func SerializeUpdate(bookID int64) forms.SerializeFunc {
	return func(vals forms.Values) (any, error) {
		totalCopies, err := atoi(vals.Get(FieldEditTotalCopies), "totalCopies")
		if err != nil {
			return nil, err
		}
		authorID, err := atoi64(vals.Get(FieldEditAuthor), "authorId")
		if err != nil {
			return nil, err
		}
		publisherID, err := atoi64(vals.Get(FieldEditPublisher), "publisherId")
		if err != nil {
			return nil, err
		}
		courseID, err := atoi64(vals.Get(FieldEditCourse), "courseId")
		if err != nil {
			return nil, err
		}
		genreID, err := atoi64(vals.Get(FieldEditGenre), "genreId")
		if err != nil {
			return nil, err
		}

		return UpdateBookPayload{
			BookID:      bookID,
			Title:       vals.Get(FieldEditTitle),
			TotalCopies: totalCopies,
			AuthorID:    authorID,
			PublisherID: publisherID,
			CourseID:    courseID,
			ReleaseDate: vals.Get(FieldEditReleaseDate),
			GenreID:     genreID,
			Status:      vals.Get(FieldEditStatus),
		}, nil
	}
}

func atoi(raw, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("field %s: %q is not an integer", name, raw)
	}
	return n, nil
}

func atoi64(raw, name string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %q is not an integer", name, raw)
	}
	return n, nil
}
