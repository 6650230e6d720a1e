// Package ui defines the small surface the presentation layer exposes to the
// form and export machinery: toast notifications and loading affordances.
// Keeping these as interfaces lets the state machines run identically under
// the web server and under tests.
package ui

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notifier surfaces toast-level notifications to the viewer.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
}

// Control is anything with a loading/disabled visual, such as a submit or
// export button. Callers must restore the control on every exit path.
type Control interface {
	SetLoading(loading bool)
}

// Toast is one recorded notification.
type Toast struct {
	Level   Level
	Message string
}

// Recorder collects notifications in order. It backs the web layer's
// per-request toast rendering and doubles as a test double.
type Recorder struct {
	Toasts []Toast
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }
func (r *Recorder) Warning(msg string) { r.add(LevelWarning, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.Toasts = append(r.Toasts, Toast{Level: level, Message: msg})
}

// NopControl satisfies Control without any visual to manage.
type NopControl struct{}

func (NopControl) SetLoading(bool) {}

// StateControl tracks the loading flag, for callers that render it and for
// tests asserting the guaranteed-cleanup property.
type StateControl struct {
	Loading bool
	// Transitions counts SetLoading calls, letting tests assert that the
	// loading visual was both set and cleared.
	Transitions int
}

func (c *StateControl) SetLoading(loading bool) {
	c.Loading = loading
	c.Transitions++
}
