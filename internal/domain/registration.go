package domain

// Field names a single input of the registration form.
type Field string

const (
	FieldName               Field = "name"
	FieldEmail              Field = "email"
	FieldAge                Field = "age"
	FieldAttendingWithGuest Field = "attendingWithGuest"
	FieldGuestName          Field = "guestName"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldAge,
	FieldAttendingWithGuest,
	FieldGuestName,
}

// GuestAttendance is the Yes/No answer to "are you attending with a guest?".
type GuestAttendance string

const (
	GuestAttendanceNo  GuestAttendance = "No"
	GuestAttendanceYes GuestAttendance = "Yes"
)

// Valid reports whether a is one of the selectable options.
func (a GuestAttendance) Valid() bool {
	return a == GuestAttendanceNo || a == GuestAttendanceYes
}

// FormValues is the mutable record behind the registration form.
type FormValues struct {
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Age                string          `json:"age"`
	AttendingWithGuest GuestAttendance `json:"attendingWithGuest"`
	GuestName          string          `json:"guestName"`
}

// NewFormValues returns the initial, empty form.
func NewFormValues() FormValues {
	return FormValues{AttendingWithGuest: GuestAttendanceNo}
}

// WithGuest reports whether the guest sub-form applies.
func (v FormValues) WithGuest() bool {
	return v.AttendingWithGuest == GuestAttendanceYes
}

// Get returns the current text of field.
func (v FormValues) Get(field Field) string {
	switch field {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldAge:
		return v.Age
	case FieldAttendingWithGuest:
		return string(v.AttendingWithGuest)
	case FieldGuestName:
		return v.GuestName
	}
	return ""
}

// Set overwrites field with value. Unknown fields are ignored.
func (v *FormValues) Set(field Field, value string) {
	switch field {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldAge:
		v.Age = value
	case FieldAttendingWithGuest:
		v.AttendingWithGuest = GuestAttendance(value)
	case FieldGuestName:
		v.GuestName = value
	}
}

// FormErrors maps failing fields to their message. A missing key means the
// field passed or has not been checked yet.
type FormErrors map[Field]string

// Empty reports whether no field is failing.
func (e FormErrors) Empty() bool { return len(e) == 0 }

// Has reports whether field currently has an error.
func (e FormErrors) Has(field Field) bool {
	_, ok := e[field]
	return ok
}

// Strings converts the mapping to wire names, as used by JSON and templates.
func (e FormErrors) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for field, msg := range e {
		out[string(field)] = msg
	}
	return out
}

// Clone returns an independent copy of e.
func (e FormErrors) Clone() FormErrors {
	out := make(FormErrors, len(e))
	for field, msg := range e {
		out[field] = msg
	}
	return out
}

// SubmissionStatus is the lifecycle of one form session.
type SubmissionStatus string

const (
	SubmissionEditing   SubmissionStatus = "editing"
	SubmissionSubmitted SubmissionStatus = "submitted"
)
