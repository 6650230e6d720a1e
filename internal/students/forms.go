package students

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
	FieldAddDNI       = "addStudentDNI"
	FieldAddFirstName = "addStudentFirstName"
	FieldAddLastName  = "addStudentLastName"
	FieldAddAddress   = "addStudentAddress"
	FieldAddPhone     = "addStudentPhone"
	FieldAddEmail     = "addStudentEmail"
	FieldAddBirthDate = "addStudentBirthDate"
	FieldAddGender    = "addStudentGender"
	FieldAddFaculty   = "addStudentFaculty"
	FieldAddStatus    = "addStudentStatus"
)

// Field keys of the edit form. There is no DNI key; the edit dialog shows
// the DNI read-only.
const (
	FieldEditFirstName = "editStudentFirstName"
	FieldEditLastName  = "editStudentLastName"
	FieldEditAddress   = "editStudentAddress"
	FieldEditPhone     = "editStudentPhone"
	FieldEditEmail     = "editStudentEmail"
	FieldEditBirthDate = "editStudentBirthDate"
	FieldEditGender    = "editStudentGender"
	FieldEditFaculty   = "editStudentFaculty"
	FieldEditStatus    = "editStudentStatus"
)

const selectUnavailableMsg = "Opción seleccionada inactiva o no existente."

// AddSchema is the rule table of the add-student form. loc is the reference
// timezone for the birth-date bound; now may be nil (tests inject a clock).
func AddSchema(loc *time.Location, now func() time.Time) *forms.Schema {
	return forms.NewSchema(
		forms.Field{Key: FieldAddDNI, Kind: forms.KindInput, Rule: forms.DNI()},
		forms.Field{Key: FieldAddFirstName, Kind: forms.KindInput, Rule: forms.Text("nombre")},
		forms.Field{Key: FieldAddLastName, Kind: forms.KindInput, Rule: forms.Text("apellido")},
		forms.Field{Key: FieldAddAddress, Kind: forms.KindInput, Rule: forms.Address()},
		forms.Field{Key: FieldAddPhone, Kind: forms.KindInput, Rule: forms.Phone()},
		forms.Field{Key: FieldAddEmail, Kind: forms.KindInput, Rule: forms.Email()},
		forms.Field{Key: FieldAddBirthDate, Kind: forms.KindInput, Rule: forms.PastDate(loc, now)},
		forms.Field{Key: FieldAddGender, Kind: forms.KindSelect},
		forms.Field{Key: FieldAddFaculty, Kind: forms.KindSelect},
		forms.Field{Key: FieldAddStatus, Kind: forms.KindSelect},
	)
}

// EditSchema is the rule table of the edit-student form. The DNI never
// appears; it cannot be edited.
func EditSchema(loc *time.Location, now func() time.Time) *forms.Schema {
	return forms.NewSchema(
		forms.Field{Key: FieldEditFirstName, Kind: forms.KindInput, Rule: forms.Text("nombre")},
		forms.Field{Key: FieldEditLastName, Kind: forms.KindInput, Rule: forms.Text("apellido")},
		forms.Field{Key: FieldEditAddress, Kind: forms.KindInput, Rule: forms.Address()},
		forms.Field{Key: FieldEditPhone, Kind: forms.KindInput, Rule: forms.Phone()},
		forms.Field{Key: FieldEditEmail, Kind: forms.KindInput, Rule: forms.Email()},
		forms.Field{Key: FieldEditBirthDate, Kind: forms.KindInput, Rule: forms.PastDate(loc, now)},
		forms.Field{Key: FieldEditGender, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
		forms.Field{Key: FieldEditFaculty, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
		forms.Field{Key: FieldEditStatus, Kind: forms.KindSelect, SelectMessage: selectUnavailableMsg},
	)
}

// SerializeCreate maps validated add-form values onto the POST payload.
func SerializeCreate(vals forms.Values) (any, error) {
	facultyID, err := atoi64(vals.Get(FieldAddFaculty), "facultyId")
	if err != nil {
		return nil, err
	}
	return CreateStudentPayload{
		DNI:       vals.Get(FieldAddDNI),
		FirstName: vals.Get(FieldAddFirstName),
		LastName:  vals.Get(FieldAddLastName),
		Address:   vals.Get(FieldAddAddress),
		Phone:     vals.Get(FieldAddPhone),
		Email:     vals.Get(FieldAddEmail),
		BirthDate: vals.Get(FieldAddBirthDate),
		Gender:    vals.Get(FieldAddGender),
		FacultyID: facultyID,
		Status:    vals.Get(FieldAddStatus),
	}, nil
}

// SerializeUpdate maps validated edit-form values onto the PUT payload for
// the student being edited.
func SerializeUpdate(studentID int64) forms.SerializeFunc {
	return func(vals forms.Values) (any, error) {
		facultyID, err := atoi64(vals.Get(FieldEditFaculty), "facultyId")
		if err != nil {
			return nil, err
		}
		return UpdateStudentPayload{
			StudentID: studentID,
			FirstName: vals.Get(FieldEditFirstName),
			LastName:  vals.Get(FieldEditLastName),
			Address:   vals.Get(FieldEditAddress),
			Phone:     vals.Get(FieldEditPhone),
			Email:     vals.Get(FieldEditEmail),
			BirthDate: vals.Get(FieldEditBirthDate),
			Gender:    vals.Get(FieldEditGender),
			FacultyID: facultyID,
			Status:    vals.Get(FieldEditStatus),
		}, nil
	}
}

func atoi64(raw, name string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %q is not an integer", name, raw)
	}
	return n, nil
}
