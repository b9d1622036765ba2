package form

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spec-kit/event-registration/internal/domain"
)

// Messages shown beneath failing fields.
const (
	MsgNameRequired      = "Name is required"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Email is invalid"
	MsgAgeRequired       = "Age is required"
	MsgAgeInvalid        = "Age must be a number greater than 0"
	MsgGuestNameRequired = "Guest Name is required"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// CheckAll evaluates every rule against values and returns the failing
// fields. Each field is checked independently; a field yields at most one
// message, with "required" winning over format checks.
func CheckAll(values domain.FormValues) domain.FormErrors {
	errs := domain.FormErrors{}

	if values.Name == "" {
		errs[domain.FieldName] = MsgNameRequired
	}

	switch {
	case values.Email == "":
		errs[domain.FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(values.Email):
		errs[domain.FieldEmail] = MsgEmailInvalid
	}

	switch {
	case values.Age == "":
		errs[domain.FieldAge] = MsgAgeRequired
	default:
		n, ok := parseNumber(values.Age)
		if !ok || !(n > 0) {
			errs[domain.FieldAge] = MsgAgeInvalid
		}
	}

	if values.WithGuest() && values.GuestName == "" {
		errs[domain.FieldGuestName] = MsgGuestNameRequired
	}

	return errs
}

// parseNumber converts numeric-like text the way a browser number coercion
// does: surrounding whitespace is ignored, blank text is zero, and 0x/0o/0b
// integer literals and Infinity are accepted.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if strings.ContainsRune(s, '_') {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				if errors.Is(err, strconv.ErrRange) {
					return math.MaxFloat64, true
				}
				return 0, false
			}
			return float64(n), true
		}
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != 'e' && r != 'E' && r != '+' && r != '-' {
			return 0, false
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}
