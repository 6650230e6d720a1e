package forms

import "sync"

// DialogState is the lifecycle position of a form dialog. Transitions are
// driven by explicit calls rather than UI events:
//
//	Closed → Opening → Open → Submitting → Open | Closed
//
// Opening covers the fetch that populates an edit or details dialog; a failed
// fetch drops straight back to Closed.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpening
	DialogOpen
	DialogSubmitting
)

func (s DialogState) String() string {
	switch s {
	case DialogClosed:
		return "closed"
	case DialogOpening:
		return "opening"
	case DialogOpen:
		return "open"
	case DialogSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// FieldStatus is the transient validity of one field, derived on each
// validation pass and discarded when the dialog closes.
type FieldStatus struct {
	Invalid bool
	Message string
}

// Dialog owns the per-form submission state: the lifecycle position, the
// first-submit suppression flag, the in-flight guard, and per-field validity.
//
// The submitted flag is a cooperative lock: BeginSubmit performs the
// check-and-set atomically, so two rapid submits of the same form yield
// exactly one network call.
type Dialog struct {
	mu sync.Mutex

	state       DialogState
	firstSubmit bool
	submitted   bool
	fields      map[string]FieldStatus
}

// NewDialog returns a closed dialog with live validation suppressed.
func NewDialog() *Dialog {
	return &Dialog{
		state:       DialogClosed,
		firstSubmit: true,
		fields:      make(map[string]FieldStatus),
	}
}

// State returns the current lifecycle position.
func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// BeginOpen moves Closed → Opening while a populating fetch is in flight.
func (d *Dialog) BeginOpen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogOpening
}

// FinishOpen moves Opening → Open and clears any stale field styling left
// from a previous cycle.
func (d *Dialog) FinishOpen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogOpen
	d.fields = make(map[string]FieldStatus)
}

// Close dismisses the dialog from any state. Both submission flags reset
// together, so reopening starts a fresh cycle with live validation
// suppressed until the next submit attempt. Field styling is discarded.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogClosed
	d.firstSubmit = true
	d.submitted = false
	d.fields = make(map[string]FieldStatus)
}

// BeginSubmit is the duplicate-submit guard. It returns false when a submit
// is already in flight; otherwise it sets the guard, ends first-submit
// suppression, and moves the dialog to Submitting.
func (d *Dialog) BeginSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitted {
		return false
	}
	d.submitted = true
	d.firstSubmit = false
	d.state = DialogSubmitting
	return true
}

// FailSubmit returns Submitting → Open and releases the guard so the user
// may retry immediately. Used for local validation failures and for backend
// field-error responses, the only paths that keep the dialog open.
func (d *Dialog) FailSubmit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitted = false
	if d.state == DialogSubmitting {
		d.state = DialogOpen
	}
}

// LiveValidationActive reports whether per-field validation should run on
// input events. It stays false until the first submit attempt of a cycle.
func (d *Dialog) LiveValidationActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.firstSubmit
}

// SetFieldStatus records one field's validity.
func (d *Dialog) SetFieldStatus(key string, status FieldStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[key] = status
}

// FieldStatus returns the recorded validity for key; the zero value means
// untouched/valid.
func (d *Dialog) FieldStatus(key string) FieldStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields[key]
}

// InvalidFields returns the keys currently marked invalid.
func (d *Dialog) InvalidFields() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var keys []string
	for k, st := range d.fields {
		if st.Invalid {
			keys = append(keys, k)
		}
	}
	return keys
}

// ResetFields clears all field styling without touching the lifecycle,
// mirroring the form reset performed when an add dialog reopens.
func (d *Dialog) ResetFields() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields = make(map[string]FieldStatus)
}
