// Package api provides the HTTP client for the BookStudio REST backend.
// This package has no UI dependencies and can be used by any frontend.
package api

import "encoding/json"

// Option is a single {id, name} pair of a reference list (authors,
// publishers, courses, genres, faculties).
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SelectOptions maps a reference category to its option list, as returned
// by GET {base}/select-options.
type SelectOptions map[string][]Option

// FieldError names a single invalid form field in a structured backend
// validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the envelope returned by mutating endpoints (POST/PUT).
//
// On domain success, Success is true and Data carries the created or
// updated entity. On a structured validation failure the backend answers
// HTTP 400 with ErrorType "validation_error" and a field-error list; every
// other failure carries only Message/ErrorType/StatusCode.
type Result struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	ErrorType  string          `json:"errorType,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
	Errors     []FieldError    `json:"errors,omitempty"`

	// HTTPStatus is the transport status the envelope arrived with.
	HTTPStatus int `json:"-"`
}

// ErrorTypeValidation marks a Result carrying per-field errors.
const ErrorTypeValidation = "validation_error"

// IsValidationFailure reports whether the result is an HTTP 400 carrying the
// validation-error marker. Only this outcome keeps a dialog open.
func (r *Result) IsValidationFailure() bool {
	return r.HTTPStatus == 400 && r.ErrorType == ErrorTypeValidation
}

// DecodeData unmarshals the entity payload into v.
func (r *Result) DecodeData(v any) error {
	return json.Unmarshal(r.Data, v)
}
