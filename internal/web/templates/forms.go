package templates

import (
	"fmt"
	"io"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/forms"
	"github.com/bookstudio/webui/internal/ui"
)

// inputField renders a labelled input with its validation state. typ is the
// HTML input type ("text", "date", "number").
func inputField(w io.Writer, key, label, typ, value string, status forms.FieldStatus) error {
	cls := "form-control"
	if status.Invalid {
		cls += " is-invalid"
	}
	if _, err := fmt.Fprintf(w,
		`<div class="mb-3"><label class="form-label" for="%[1]s">%[2]s</label>`+
			`<input class="%[3]s" type="%[4]s" id="%[1]s" name="%[1]s" value="%[5]s">`,
		esc(key), esc(label), cls, typ, esc(value)); err != nil {
		return err
	}
	return feedback(w, status)
}

// selectField renders a labelled select over backend-served options.
func selectField(w io.Writer, key, label string, opts []api.Option, selected string, status forms.FieldStatus) error {
	cls := "form-select"
	if status.Invalid {
		cls += " is-invalid"
	}
	if _, err := fmt.Fprintf(w,
		`<div class="mb-3"><label class="form-label" for="%[1]s">%[2]s</label>`+
			`<select class="%[3]s" id="%[1]s" name="%[1]s"><option value="">Seleccione una opción</option>`,
		esc(key), esc(label), cls); err != nil {
		return err
	}
	for _, o := range opts {
		sel := ""
		if fmt.Sprintf("%d", o.ID) == selected {
			sel = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%d"%s>%s</option>`, o.ID, sel, esc(o.Name)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select>`); err != nil {
		return err
	}
	return feedback(w, status)
}

// staticSelectField renders a labelled select over fixed options such as
// gender and status.
func staticSelectField(w io.Writer, key, label string, items []ui.SelectItem, selected string, status forms.FieldStatus) error {
	cls := "form-select"
	if status.Invalid {
		cls += " is-invalid"
	}
	if _, err := fmt.Fprintf(w,
		`<div class="mb-3"><label class="form-label" for="%[1]s">%[2]s</label>`+
			`<select class="%[3]s" id="%[1]s" name="%[1]s"><option value="">Seleccione una opción</option>`,
		esc(key), esc(label), cls); err != nil {
		return err
	}
	for _, it := range items {
		sel := ""
		if it.Value == selected {
			sel = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(it.Value), sel, esc(it.Label)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select>`); err != nil {
		return err
	}
	return feedback(w, status)
}

func feedback(w io.Writer, status forms.FieldStatus) error {
	if status.Invalid && status.Message != "" {
		if _, err := fmt.Fprintf(w, `<div class="invalid-feedback">%s</div>`, esc(status.Message)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

// modalOpen writes the shared modal scaffolding up to the form body. action
// is the submit endpoint.
func modalOpen(w io.Writer, id, title, formID, action string) error {
	_, err := fmt.Fprintf(w,
		`<div class="modal fade" id="%s" tabindex="-1"><div class="modal-dialog modal-lg"><div class="modal-content">`+
			`<div class="modal-header"><h5 class="modal-title">%s</h5><button type="button" class="btn-close" data-bs-dismiss="modal"></button></div>`+
			`<form id="%s" method="post" action="%s"><div class="modal-body">`,
		esc(id), esc(title), esc(formID), esc(action))
	return err
}

// modalClose writes the footer with the submit button and closes the form.
func modalClose(w io.Writer, buttonID, buttonLabel string) error {
	_, err := fmt.Fprintf(w,
		`</div><div class="modal-footer">`+
			`<button type="button" class="btn btn-secondary" data-bs-dismiss="modal">Cancelar</button>`+
			`<button type="submit" class="btn btn-primary" id="%s">%s</button>`+
			`</div></form></div></div></div>`,
		esc(buttonID), esc(buttonLabel))
	return err
}
