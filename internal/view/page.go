// Package view builds and renders the two screens of the registration form:
// the editable form and the read-only submission summary.
package view

import (
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/form"
)

// Labels shown next to each field, shared by every front-end.
var Labels = map[domain.Field]string{
	domain.FieldName:               "Name",
	domain.FieldEmail:              "Email",
	domain.FieldAge:                "Age",
	domain.FieldAttendingWithGuest: "Are you attending with a guest?",
	domain.FieldGuestName:          "Guest Name",
}

const (
	PageTitle    = "Event Registration Form"
	SummaryTitle = "Form Submission Summary"
)

// Page is either an editing form or a summary; exactly one of the two is set.
type Page struct {
	Title   string
	Editing *EditingView
	Summary *SummaryView
}

// FieldView is one rendered input.
type FieldView struct {
	Name      string
	Label     string
	InputType string
	Value     string
	Error     string
}

// Option is one choice of a select input.
type Option struct {
	Value    string
	Selected bool
}

// EditingView is the form while it can still be changed. Guest is nil when
// the guest-name input must not be shown.
type EditingView struct {
	Name      FieldView
	Email     FieldView
	Age       FieldView
	Attending FieldView
	Options   []Option
	Guest     *FieldView
}

// SummaryRow is one "Label: value" line of the summary.
type SummaryRow struct {
	Label string
	Value string
}

// SummaryView lists the submitted values.
type SummaryView struct {
	Heading string
	Rows    []SummaryRow
}

// Build picks the screen matching the state of s.
func Build(s *form.State) Page {
	if s.Submitted() {
		return Page{Title: PageTitle, Summary: &SummaryView{Heading: SummaryTitle, Rows: SummaryRows(s.Values())}}
	}
	return Page{Title: PageTitle, Editing: NewEditingView(s.Values(), s.Errors())}
}

// NewEditingView binds values and errors to the form inputs.
func NewEditingView(values domain.FormValues, errs domain.FormErrors) *EditingView {
	field := func(f domain.Field, inputType string) FieldView {
		return FieldView{
			Name:      string(f),
			Label:     Labels[f],
			InputType: inputType,
			Value:     values.Get(f),
			Error:     errs[f],
		}
	}

	ev := &EditingView{
		Name:      field(domain.FieldName, "text"),
		Email:     field(domain.FieldEmail, "email"),
		Age:       field(domain.FieldAge, "number"),
		Attending: field(domain.FieldAttendingWithGuest, "select"),
		Options: []Option{
			{Value: string(domain.GuestAttendanceNo), Selected: !values.WithGuest()},
			{Value: string(domain.GuestAttendanceYes), Selected: values.WithGuest()},
		},
	}
	if values.WithGuest() {
		guest := field(domain.FieldGuestName, "text")
		ev.Guest = &guest
	}
	return ev
}

// SummaryRows lists the submitted values; the guest name only appears when
// attending with a guest.
func SummaryRows(values domain.FormValues) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Name", Value: values.Name},
		{Label: "Email", Value: values.Email},
		{Label: "Age", Value: values.Age},
		{Label: "Attending with Guest", Value: string(values.AttendingWithGuest)},
	}
	if values.WithGuest() {
		rows = append(rows, SummaryRow{Label: "Guest Name", Value: values.GuestName})
	}
	return rows
}
