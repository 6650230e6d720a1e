package forms

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/ui"
)

// testHarness wires a controller around counting stubs.
type testHarness struct {
	controller *Controller
	dialog     *Dialog
	notifier   *ui.Recorder
	button     *ui.StateControl

	sendCalls  int
	sendResult *api.Result
	sendErr    error
	applied    []json.RawMessage
}

func newHarness(t *testing.T, schema *Schema) *testHarness {
	t.Helper()

	h := &testHarness{
		dialog:   NewDialog(),
		notifier: &ui.Recorder{},
		button:   &ui.StateControl{},
	}
	h.controller = NewController(ControllerConfig{
		Name:   "addStudentForm",
		Schema: schema,
		Dialog: h.dialog,
		Serialize: func(vals Values) (any, error) {
			return map[string]string{"dni": vals.Get("addStudentDNI")}, nil
		},
		Send: func(ctx context.Context, payload any) (*api.Result, error) {
			h.sendCalls++
			return h.sendResult, h.sendErr
		},
		Apply: func(data json.RawMessage) error {
			h.applied = append(h.applied, data)
			return nil
		},
		Notifier:   h.notifier,
		Button:     h.button,
		SuccessMsg: "Estudiante agregado exitosamente.",
		FailureMsg: "Hubo un error al agregar el estudiante.",
	})
	return h
}

func studentSchema() *Schema {
	return NewSchema(
		Field{Key: "addStudentDNI", Kind: KindInput, Rule: DNI()},
		Field{Key: "addStudentFirstName", Kind: KindInput, Rule: Text("nombre")},
	)
}

func openDialog(d *Dialog) {
	d.BeginOpen()
	d.FinishOpen()
}

func TestSubmit_InvalidFieldShortCircuitsNetwork(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "", // empty required text field
	})

	if outcome != OutcomeInvalid {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeInvalid)
	}
	if h.sendCalls != 0 {
		t.Errorf("sendCalls = %d, want 0 (validation must short-circuit submission)", h.sendCalls)
	}

	invalid := h.dialog.InvalidFields()
	if len(invalid) != 1 || invalid[0] != "addStudentFirstName" {
		t.Errorf("InvalidFields() = %v, want exactly [addStudentFirstName]", invalid)
	}

	// Guard must be released so the user can retry immediately.
	if !h.dialog.BeginSubmit() {
		t.Error("submitted flag still set after validation failure")
	}
}

func TestSubmit_ReentrantSubmitMakesOneCall(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendResult = &api.Result{Success: true, Data: json.RawMessage(`{}`), HTTPStatus: 201}

	vals := Values{"addStudentDNI": "71234567", "addStudentFirstName": "Ana"}

	var nested Outcome
	// The send stub triggers a second submit while the first is in flight,
	// modeling a rapid double click.
	h.controller.send = func(ctx context.Context, payload any) (*api.Result, error) {
		h.sendCalls++
		nested = h.controller.Submit(ctx, vals)
		return h.sendResult, nil
	}

	if outcome := h.controller.Submit(context.Background(), vals); outcome != OutcomeSuccess {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeSuccess)
	}
	if nested != OutcomeRejected {
		t.Errorf("nested Submit() = %v, want %v", nested, OutcomeRejected)
	}
	if h.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want exactly 1", h.sendCalls)
	}
}

func TestSubmit_SuccessAppliesRowClosesDialogAndToasts(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendResult = &api.Result{
		Success:    true,
		Data:       json.RawMessage(`{"studentId":9}`),
		HTTPStatus: 201,
	}

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "Ana",
	})

	if outcome != OutcomeSuccess {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeSuccess)
	}
	if len(h.applied) != 1 || string(h.applied[0]) != `{"studentId":9}` {
		t.Errorf("applied = %v, want the result entity", h.applied)
	}
	if h.dialog.State() != DialogClosed {
		t.Errorf("dialog state = %v, want closed", h.dialog.State())
	}
	if len(h.notifier.Toasts) != 1 || h.notifier.Toasts[0].Level != ui.LevelSuccess {
		t.Errorf("toasts = %v, want one success toast", h.notifier.Toasts)
	}
}

func TestSubmit_BackendFieldErrorsKeepDialogOpen(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendResult = &api.Result{
		Success:    false,
		ErrorType:  api.ErrorTypeValidation,
		HTTPStatus: 400,
		Errors:     []api.FieldError{{Field: "addStudentDNI", Message: "DNI inválido"}},
	}

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "Ana",
	})

	if outcome != OutcomeFieldErrors {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeFieldErrors)
	}
	if h.dialog.State() != DialogOpen {
		t.Errorf("dialog state = %v, want open (the only path that keeps it open)", h.dialog.State())
	}

	st := h.dialog.FieldStatus("addStudentDNI")
	if !st.Invalid || st.Message != "DNI inválido" {
		t.Errorf("DNI status = %+v, want invalid with backend message", st)
	}
	if st := h.dialog.FieldStatus("addStudentFirstName"); st.Invalid {
		t.Error("other fields must stay untouched")
	}
	if len(h.notifier.Toasts) != 0 {
		t.Errorf("toasts = %v, want none for field-level errors", h.notifier.Toasts)
	}

	// submitted released for retry.
	if !h.dialog.BeginSubmit() {
		t.Error("submitted flag still set after backend field errors")
	}
}

func TestSubmit_OtherBackendErrorClosesDialogWithToast(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendResult = &api.Result{
		Success:    false,
		ErrorType:  "creation_failed",
		Message:    "No se pudo crear el registro.",
		StatusCode: 500,
		HTTPStatus: 500,
	}

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "Ana",
	})

	if outcome != OutcomeFailure {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeFailure)
	}
	if h.dialog.State() != DialogClosed {
		t.Errorf("dialog state = %v, want closed", h.dialog.State())
	}
	if len(h.notifier.Toasts) != 1 || h.notifier.Toasts[0].Level != ui.LevelError {
		t.Fatalf("toasts = %v, want one error toast", h.notifier.Toasts)
	}
	if h.notifier.Toasts[0].Message != "No se pudo crear el registro." {
		t.Errorf("toast message = %q, want the backend message", h.notifier.Toasts[0].Message)
	}
}

func TestSubmit_NetworkErrorResetsForRetry(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendErr = errors.New("connection refused")

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "Ana",
	})

	if outcome != OutcomeFailure {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeFailure)
	}
	if h.dialog.State() != DialogClosed {
		t.Errorf("dialog state = %v, want closed", h.dialog.State())
	}
	if len(h.notifier.Toasts) != 1 || h.notifier.Toasts[0].Level != ui.LevelError {
		t.Errorf("toasts = %v, want one generic error toast", h.notifier.Toasts)
	}

	// Close resets both flags; a fresh cycle may submit again.
	openDialog(h.dialog)
	if !h.dialog.BeginSubmit() {
		t.Error("submit flag not reset, retry impossible")
	}
}

func TestSubmit_LoadingClearedOnEveryExitPath(t *testing.T) {
	paths := []struct {
		name   string
		result *api.Result
		err    error
	}{
		{"success", &api.Result{Success: true, Data: json.RawMessage(`{}`), HTTPStatus: 200}, nil},
		{"field errors", &api.Result{ErrorType: api.ErrorTypeValidation, HTTPStatus: 400}, nil},
		{"backend error", &api.Result{ErrorType: "server_error", HTTPStatus: 500}, nil},
		{"network error", nil, errors.New("boom")},
	}

	for _, tt := range paths {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, studentSchema())
			openDialog(h.dialog)
			h.sendResult = tt.result
			h.sendErr = tt.err

			h.controller.Submit(context.Background(), Values{
				"addStudentDNI":       "71234567",
				"addStudentFirstName": "Ana",
			})

			if h.button.Loading {
				t.Error("submit control still loading after exit")
			}
			if h.button.Transitions < 2 {
				t.Errorf("button transitions = %d, want set + clear", h.button.Transitions)
			}
		})
	}
}

func TestLiveValidate_SuppressedUntilFirstSubmit(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)

	h.controller.LiveValidate("addStudentDNI", "bad")
	if st := h.dialog.FieldStatus("addStudentDNI"); st.Invalid {
		t.Error("live validation ran before the first submit attempt")
	}

	// First submit attempt ends suppression.
	h.controller.Submit(context.Background(), Values{})

	h.controller.LiveValidate("addStudentDNI", "bad")
	if st := h.dialog.FieldStatus("addStudentDNI"); !st.Invalid {
		t.Error("live validation inactive after the first submit attempt")
	}

	// Fixing the value clears the styling.
	h.controller.LiveValidate("addStudentDNI", "71234567")
	if st := h.dialog.FieldStatus("addStudentDNI"); st.Invalid {
		t.Error("field still invalid after a corrected value")
	}
}

func TestDialog_CloseResetsStylingAndSuppression(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)

	h.controller.Submit(context.Background(), Values{}) // marks fields invalid
	if len(h.dialog.InvalidFields()) == 0 {
		t.Fatal("expected invalid fields before close")
	}

	h.dialog.Close()
	openDialog(h.dialog)

	if len(h.dialog.InvalidFields()) != 0 {
		t.Error("invalid styling survived dialog close")
	}
	if h.dialog.LiveValidationActive() {
		t.Error("first-submit suppression not restored by close")
	}
}

func TestSubmit_DialogClosedMidFlightStillAppliesResult(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendResult = &api.Result{
		Success:    true,
		Data:       json.RawMessage(`{"studentId":9}`),
		HTTPStatus: 201,
	}

	// The user dismisses the dialog while the request is in flight.
	h.controller.send = func(ctx context.Context, payload any) (*api.Result, error) {
		h.sendCalls++
		h.dialog.Close()
		return h.sendResult, nil
	}

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "Ana",
	})

	if outcome != OutcomeSuccess {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeSuccess)
	}
	// The created record is authoritative and still reaches the table.
	if len(h.applied) != 1 || string(h.applied[0]) != `{"studentId":9}` {
		t.Errorf("applied = %v, want the result entity despite the dismissal", h.applied)
	}
	// Every UI mutation is skipped: no toast, no reopened dialog.
	if len(h.notifier.Toasts) != 0 {
		t.Errorf("toasts = %v, want none after the dialog closed", h.notifier.Toasts)
	}
	if h.dialog.State() != DialogClosed {
		t.Errorf("dialog state = %v, want it left closed", h.dialog.State())
	}
}

func TestSubmit_DialogClosedMidFlightLeavesNoFieldMarks(t *testing.T) {
	h := newHarness(t, studentSchema())
	openDialog(h.dialog)
	h.sendResult = &api.Result{
		Success:    false,
		ErrorType:  api.ErrorTypeValidation,
		HTTPStatus: 400,
		Errors:     []api.FieldError{{Field: "addStudentDNI", Message: "DNI inválido"}},
	}

	h.controller.send = func(ctx context.Context, payload any) (*api.Result, error) {
		h.sendCalls++
		h.dialog.Close()
		return h.sendResult, nil
	}

	outcome := h.controller.Submit(context.Background(), Values{
		"addStudentDNI":       "71234567",
		"addStudentFirstName": "Ana",
	})

	if outcome != OutcomeFieldErrors {
		t.Fatalf("Submit() = %v, want %v", outcome, OutcomeFieldErrors)
	}
	if st := h.dialog.FieldStatus("addStudentDNI"); st.Invalid {
		t.Error("backend field errors styled a dialog the user already closed")
	}
	if len(h.notifier.Toasts) != 0 {
		t.Errorf("toasts = %v, want none after the dialog closed", h.notifier.Toasts)
	}
}
