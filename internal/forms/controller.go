package forms

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/logging"
	"github.com/bookstudio/webui/internal/ui"
)

// SerializeFunc turns validated raw values into a typed request payload.
// Implementations do explicit field-by-field mapping with type coercion
// (integer parsing for ids and counts, passthrough for text/date/enum).
type SerializeFunc func(vals Values) (any, error)

// SendFunc issues the network call for a serialized payload. The error is
// non-nil only for transport or parse failures.
type SendFunc func(ctx context.Context, payload any) (*api.Result, error)

// ApplyFunc applies a successful result to the table: insert for add forms,
// patch for edit forms.
type ApplyFunc func(data json.RawMessage) error

// Outcome is the terminal state of one submit attempt.
type Outcome int

const (
	// OutcomeRejected means the duplicate-submit guard tripped; nothing ran.
	OutcomeRejected Outcome = iota

	// OutcomeInvalid means local validation failed; no network call was made.
	OutcomeInvalid

	// OutcomeFieldErrors means the backend answered 400 with a field-error
	// list; the dialog stays open with those fields marked.
	OutcomeFieldErrors

	// OutcomeFailure covers every other backend, network or parse failure.
	OutcomeFailure

	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFieldErrors:
		return "field_errors"
	case OutcomeFailure:
		return "failure"
	case OutcomeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Controller is the submission state machine for one form (add or edit).
// It guards against duplicate submits and orchestrates
// validate → serialize → submit → react-to-result.
type Controller struct {
	name   string
	schema *Schema
	dialog *Dialog

	serialize SerializeFunc
	send      SendFunc
	apply     ApplyFunc

	notifier ui.Notifier
	button   ui.Control

	successMsg string
	failureMsg string
}

// ControllerConfig wires a Controller.
type ControllerConfig struct {
	Name      string
	Schema    *Schema
	Dialog    *Dialog
	Serialize SerializeFunc
	Send      SendFunc
	Apply     ApplyFunc
	Notifier  ui.Notifier
	Button    ui.Control

	// SuccessMsg and FailureMsg are the toasts for the success path and the
	// generic failure path ("Libro agregado exitosamente." etc.).
	SuccessMsg string
	FailureMsg string
}

// NewController builds a submission controller. Button may be nil when the
// caller has no loading visual to manage.
func NewController(cfg ControllerConfig) *Controller {
	button := cfg.Button
	if button == nil {
		button = ui.NopControl{}
	}
	return &Controller{
		name:       cfg.Name,
		schema:     cfg.Schema,
		dialog:     cfg.Dialog,
		serialize:  cfg.Serialize,
		send:       cfg.Send,
		apply:      cfg.Apply,
		notifier:   cfg.Notifier,
		button:     button,
		successMsg: cfg.SuccessMsg,
		failureMsg: cfg.FailureMsg,
	}
}

// Dialog exposes the controller's dialog for lifecycle calls.
func (c *Controller) Dialog() *Dialog {
	return c.dialog
}

// Schema exposes the controller's rule table.
func (c *Controller) Schema() *Schema {
	return c.schema
}

// LiveValidate validates a single field on an input/change event. It is a
// no-op until the first submit attempt of the dialog's cycle.
func (c *Controller) LiveValidate(key, value string) {
	if !c.dialog.LiveValidationActive() {
		return
	}
	f, ok := c.schema.Field(key)
	if !ok {
		return
	}
	if valid, msg := CheckField(f, value); !valid {
		c.dialog.SetFieldStatus(key, FieldStatus{Invalid: true, Message: msg})
	} else {
		c.dialog.SetFieldStatus(key, FieldStatus{})
	}
}

// Submit runs one full submission cycle and returns its outcome.
//
// The loading visual of the submit control is cleared on every exit path.
// A response that arrives after the dialog has been dismissed is applied to
// the table (the data is still authoritative) but triggers no dialog or
// toast mutations.
func (c *Controller) Submit(ctx context.Context, vals Values) Outcome {
	if !c.dialog.BeginSubmit() {
		return OutcomeRejected
	}

	logger := logging.WithFields(ctx,
		"form", c.name,
		"submission_id", uuid.NewString(),
	)

	issues := c.schema.Validate(vals)
	if len(issues) > 0 {
		for _, issue := range issues {
			c.dialog.SetFieldStatus(issue.Field, FieldStatus{Invalid: true, Message: issue.Message})
		}
		c.dialog.FailSubmit()
		logger.Debug("submit blocked by validation", "invalid_fields", len(issues))
		return OutcomeInvalid
	}

	payload, err := c.serialize(vals)
	if err != nil {
		// Serialization failing after validation passed is a programming
		// error; surface it like any other unexpected failure.
		logger.Error("payload serialization failed", "error", err)
		c.notifier.Error(c.failureMsg)
		c.dialog.Close()
		return OutcomeFailure
	}

	c.button.SetLoading(true)
	defer c.button.SetLoading(false)

	result, err := c.send(ctx, payload)

	switch {
	case err != nil:
		logger.Error("submit failed", "error", err)
		if c.dialogDismissed(logger) {
			return OutcomeFailure
		}
		c.notifier.Error(c.failureMsg)
		c.dialog.Close()
		return OutcomeFailure

	case result.Success:
		if err := c.apply(result.Data); err != nil {
			logger.Error("applying result to table failed", "error", err)
		}
		if c.dialogDismissed(logger) {
			return OutcomeSuccess
		}
		c.dialog.Close()
		c.notifier.Success(c.successMsg)
		logger.Info("submit succeeded")
		return OutcomeSuccess

	case result.IsValidationFailure():
		logger.Info("backend rejected fields", "fields", len(result.Errors))
		if c.dialogDismissed(logger) {
			return OutcomeFieldErrors
		}
		for _, fe := range result.Errors {
			c.dialog.SetFieldStatus(fe.Field, FieldStatus{Invalid: true, Message: fe.Message})
		}
		c.dialog.FailSubmit()
		return OutcomeFieldErrors

	default:
		logger.Error("backend error",
			"error_type", result.ErrorType,
			"status_code", result.StatusCode,
			"message", result.Message,
		)
		if c.dialogDismissed(logger) {
			return OutcomeFailure
		}
		msg := result.Message
		if msg == "" {
			msg = c.failureMsg
		}
		c.notifier.Error(msg)
		c.dialog.Close()
		return OutcomeFailure
	}
}

// dialogDismissed reports whether the dialog was closed while the request
// was in flight. Late responses then skip all UI mutation.
func (c *Controller) dialogDismissed(logger *slog.Logger) bool {
	if c.dialog.State() == DialogClosed {
		logger.Warn("response arrived after dialog closed; skipping UI updates")
		return true
	}
	return false
}
