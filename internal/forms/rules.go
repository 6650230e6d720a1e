package forms

// rules.go provides the rule constructors used by the per-entity rule tables.
// Every user-facing message is Spanish, matching the rest of the BookStudio UI.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dniPattern   = regexp.MustCompile(`^\d{8}$`)
	phonePattern = regexp.MustCompile(`^9\d{8}$`)
)

// Text validates free-text fields such as titles and names: the value must
// contain at least one letter or digit, so symbol-only input is rejected.
// label names the field in the message ("título", "nombre", "apellido").
func Text(label string) Rule {
	return func(value string) error {
		if !containsWordChar(value) {
			return fmt.Errorf("El %s no puede estar vacío ni contener solo símbolos.", label)
		}
		return nil
	}
}

// TotalCopies validates a copy count for new books: an integer in [1, 1000].
func TotalCopies() Rule {
	return TotalCopiesInRange(1, 1000)
}

// TotalCopiesInRange validates a copy count against dynamic bounds. Edit
// dialogs raise min to the count already on loan so totals never drop below
// what is lent out.
func TotalCopiesInRange(min, max int) Rule {
	return func(value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("Debe ingresar un número válido.")
		}
		if min > 1 && n < min {
			return fmt.Errorf("El total de ejemplares no puede ser menor a %d.", min)
		}
		if n < min || n > max {
			return fmt.Errorf("El total de ejemplares debe estar entre %d y %d.", min, max)
		}
		return nil
	}
}

// PastDate validates a YYYY-MM-DD date that must not lie after the current
// date in loc (the fixed reference timezone). now may be nil, in which case
// time.Now is used; tests inject a clock.
func PastDate(loc *time.Location, now func() time.Time) Rule {
	if now == nil {
		now = time.Now
	}
	return func(value string) error {
		d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
		if err != nil {
			return fmt.Errorf("La fecha ingresada no es válida.")
		}
		today := now().In(loc)
		eod := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, loc)
		if d.After(eod) {
			return fmt.Errorf("La fecha no puede ser posterior a la fecha actual.")
		}
		return nil
	}
}

// DNI validates the fixed-length numeric national identifier.
func DNI() Rule {
	return func(value string) error {
		if !dniPattern.MatchString(strings.TrimSpace(value)) {
			return fmt.Errorf("El DNI debe tener exactamente 8 dígitos.")
		}
		return nil
	}
}

// Phone validates a nine-digit mobile number starting with 9.
func Phone() Rule {
	return func(value string) error {
		if !phonePattern.MatchString(strings.TrimSpace(value)) {
			return fmt.Errorf("El teléfono debe tener 9 dígitos y comenzar con 9.")
		}
		return nil
	}
}

// Email validates the basic address shape.
func Email() Rule {
	return func(value string) error {
		if !emailPattern.MatchString(strings.TrimSpace(value)) {
			return fmt.Errorf("El correo electrónico no es válido.")
		}
		return nil
	}
}

// Address validates a street address: at least five characters with real
// content, not just punctuation.
func Address() Rule {
	return func(value string) error {
		v := strings.TrimSpace(value)
		if len([]rune(v)) < 5 || !containsWordChar(v) {
			return fmt.Errorf("La dirección no es válida.")
		}
		return nil
	}
}

// containsWordChar reports whether s has at least one letter or digit.
func containsWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
