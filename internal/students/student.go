// Package students implements the students module: the record type, the
// per-field rule tables for the add/edit forms, payload serialization, and
// the row rendering used by the students table.
package students

import "encoding/json"

// StatusActive and StatusInactive are the two values of the enumerated
// entity status.
const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

// GenderMale and GenderFemale are the fixed gender options; the list never
// comes from the backend.
const (
	GenderMale   = "Masculino"
	GenderFemale = "Femenino"
)

// Student is a student record as returned by the backend, passed through
// unchanged.
type Student struct {
	StudentID          int64  `json:"studentId"`
	FormattedStudentID string `json:"formattedStudentId"`
	DNI                string `json:"dni"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	BirthDate          string `json:"birthDate"`
	Gender             string `json:"gender"`
	FacultyID          int64  `json:"facultyId"`
	FacultyName        string `json:"facultyName"`
	Status             string `json:"status"`
}

// DecodeStudent unmarshals a backend entity payload.
func DecodeStudent(data json.RawMessage) (Student, error) {
	var s Student
	err := json.Unmarshal(data, &s)
	return s, err
}

// CreateStudentPayload is the POST body for a new student.
type CreateStudentPayload struct {
	DNI       string `json:"dni"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
	FacultyID int64  `json:"facultyId"`
	Status    string `json:"status"`
}

// UpdateStudentPayload is the PUT body for an edited student. The DNI is
// immutable once registered and never travels on update.
type UpdateStudentPayload struct {
	StudentID int64  `json:"studentId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
	FacultyID int64  `json:"facultyId"`
	Status    string `json:"status"`
}
