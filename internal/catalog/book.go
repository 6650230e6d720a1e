// Package catalog implements the books module: record types, the per-field
// rule tables for the add/edit forms, payload serialization, and the row
// rendering used by the books table.
package catalog

import "encoding/json"

// StatusActive and StatusInactive are the two values of the enumerated
// entity status.
const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

// Book is a book record as returned by the backend, passed through
// unchanged. Foreign references carry both the raw id and the pre-joined
// display name plus formatted id supplied by the backend.
type Book struct {
	BookID          int64  `json:"bookId"`
	FormattedBookID string `json:"formattedBookId"`
	Title           string `json:"title"`
	AvailableCopies int    `json:"availableCopies"`
	LoanedCopies    int    `json:"loanedCopies"`
	TotalCopies     int    `json:"totalCopies"`

	AuthorID          int64  `json:"authorId"`
	AuthorName        string `json:"authorName"`
	FormattedAuthorID string `json:"formattedAuthorId"`

	PublisherID          int64  `json:"publisherId"`
	PublisherName        string `json:"publisherName"`
	FormattedPublisherID string `json:"formattedPublisherId"`

	CourseID          int64  `json:"courseId"`
	CourseName        string `json:"courseName"`
	FormattedCourseID string `json:"formattedCourseId"`

	ReleaseDate string `json:"releaseDate"`
	GenreID     int64  `json:"genreId"`
	GenreName   string `json:"genreName"`
	Status      string `json:"status"`
}

// DecodeBook unmarshals a backend entity payload.
func DecodeBook(data json.RawMessage) (Book, error) {
	var b Book
	err := json.Unmarshal(data, &b)
	return b, err
}

// CreateBookPayload is the POST body for a new book.
type CreateBookPayload struct {
	Title       string `json:"title"`
	TotalCopies int    `json:"totalCopies"`
	AuthorID    int64  `json:"authorId"`
	PublisherID int64  `json:"publisherId"`
	CourseID    int64  `json:"courseId"`
	ReleaseDate string `json:"releaseDate"`
	GenreID     int64  `json:"genreId"`
	Status      string `json:"status"`
}

// UpdateBookPayload is the PUT body for an edited book.
type UpdateBookPayload struct {
	BookID      int64  `json:"bookId"`
	Title       string `json:"title"`
	TotalCopies int    `json:"totalCopies"`
	AuthorID    int64  `json:"authorId"`
	PublisherID int64  `json:"publisherId"`
	CourseID    int64  `json:"courseId"`
	ReleaseDate string `json:"releaseDate"`
	GenreID     int64  `json:"genreId"`
	Status      string `json:"status"`
}
