package templates

import (
	"fmt"
	"time"
)

var shortMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// formatDate renders a backend YYYY-MM-DD date as "02 mar 2025" for the
// read-only details dialogs. Unparseable input passes through untouched.
func formatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}
