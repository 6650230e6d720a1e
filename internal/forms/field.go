// Package forms implements the validation and submission machinery shared by
// the books and students modules: per-field rule tables, the dialog lifecycle
// state machine, and the submission controller that guards every form against
// duplicate submits.
package forms

import "strings"

// Kind classifies a form field for validation purposes.
type Kind int

const (
	// KindInput is a plain text, numeric or date input.
	KindInput Kind = iota

	// KindSelect is a dropdown-backed selector. Native select validity does
	// not propagate to the enhanced widget, so invalid state is also
	// reflected onto the wrapper element at render time.
	KindSelect

	// KindSearch is the enhanced dropdown's internal filter box. It is not a
	// data field and always validates.
	KindSearch
)

// RequiredMessage is the generic message shown when the presence check fails.
const RequiredMessage = "Este campo es obligatorio."

// Rule is a semantic validation rule for one field. A nil return means the
// value is acceptable; otherwise the error text is shown as field feedback.
type Rule func(value string) error

// Field describes a single form field and its validation rule. Exactly one
// rule belongs to each field key; dispatch happens through the schema's rule
// table, never through UI element identity.
type Field struct {
	Key  string
	Kind Kind

	// Rule runs after the presence check; leave nil for fields whose only
	// constraint is being present (plain selects, enums).
	Rule Rule

	// SelectMessage, when set on a KindSelect field, replaces the feedback
	// text shown on the wrapper (edit dialogs warn about options that have
	// gone inactive or missing).
	SelectMessage string
}

// Issue is one failed field validation.
type Issue struct {
	Field   string
	Message string
}

// Schema is an ordered rule table for one form.
type Schema struct {
	fields []Field
	byKey  map[string]Field
}

// NewSchema builds a schema from the given fields, preserving order.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: fields,
		byKey:  make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		s.byKey[f.Key] = f
	}
	return s
}

// Field looks up a field by key.
func (s *Schema) Field(key string) (Field, bool) {
	f, ok := s.byKey[key]
	return f, ok
}

// Fields returns the schema's fields in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Validate runs every field against vals and returns all issues found.
// An empty result means the form may be submitted.
func (s *Schema) Validate(vals Values) []Issue {
	var issues []Issue
	for _, f := range s.fields {
		if ok, msg := CheckField(f, vals.Get(f.Key)); !ok {
			issues = append(issues, Issue{Field: f.Key, Message: msg})
		}
	}
	return issues
}

// CheckField validates one value against its field. Rules run in a fixed
// order and the first failure wins:
//
//  1. search-kind fields are never data fields and always pass,
//  2. the presence check yields the generic required message,
//  3. the field's semantic rule yields its own message.
func CheckField(f Field, value string) (bool, string) {
	if f.Kind == KindSearch {
		return true, ""
	}

	if strings.TrimSpace(value) == "" {
		return false, RequiredMessage
	}

	if f.Rule != nil {
		if err := f.Rule(value); err != nil {
			return false, err.Error()
		}
	}

	return true, ""
}

// Values holds the raw string values of a form keyed by field key.
type Values map[string]string

// Get returns the raw value for key, or "" when absent.
func (v Values) Get(key string) string {
	return v[key]
}
