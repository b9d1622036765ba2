package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/spec-kit/event-registration/internal/domain"
)

const eventSubmit = "submit"

// ErrSubmitted is returned when a submitted form is edited or submitted again.
var ErrSubmitted = errors.New("registration already submitted")

var errRejected = errors.New("registration has invalid fields")

// State is one form session: the current values, the last computed errors
// and the editing/submitted lifecycle.
type State struct {
	values  domain.FormValues
	errors  domain.FormErrors
	machine *fsm.FSM
}

// Snapshot is the serializable form of a State.
type Snapshot struct {
	Values domain.FormValues       `json:"values"`
	Errors domain.FormErrors       `json:"errors,omitempty"`
	Status domain.SubmissionStatus `json:"status"`
}

// New returns an empty form in the editing state.
func New() *State {
	return newState(domain.NewFormValues(), nil, domain.SubmissionEditing)
}

// Restore rebuilds a State from a snapshot.
func Restore(snap Snapshot) *State {
	status := snap.Status
	if status != domain.SubmissionSubmitted {
		status = domain.SubmissionEditing
	}
	values := snap.Values
	if values.AttendingWithGuest == "" {
		values.AttendingWithGuest = domain.GuestAttendanceNo
	}
	return newState(values, snap.Errors.Clone(), status)
}

func newState(values domain.FormValues, errs domain.FormErrors, status domain.SubmissionStatus) *State {
	if errs == nil {
		errs = domain.FormErrors{}
	}
	s := &State{values: values, errors: errs}
	s.machine = fsm.NewFSM(
		string(status),
		fsm.Events{
			{Name: eventSubmit, Src: []string{string(domain.SubmissionEditing)}, Dst: string(domain.SubmissionSubmitted)},
		},
		fsm.Callbacks{
			"before_" + eventSubmit: func(_ context.Context, e *fsm.Event) {
				if !s.errors.Empty() {
					e.Cancel(errRejected)
				}
			},
		},
	)
	return s
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Values: s.values,
		Errors: s.errors.Clone(),
		Status: s.Status(),
	}
}

// Values returns a copy of the current field values.
func (s *State) Values() domain.FormValues { return s.values }

// Errors returns a copy of the last computed errors.
func (s *State) Errors() domain.FormErrors { return s.errors.Clone() }

// Status reports the lifecycle state.
func (s *State) Status() domain.SubmissionStatus {
	return domain.SubmissionStatus(s.machine.Current())
}

// Submitted reports whether the form reached its terminal state.
func (s *State) Submitted() bool {
	return s.machine.Is(string(domain.SubmissionSubmitted))
}

// GuestVisible reports whether the guest-name input should be shown.
func (s *State) GuestVisible() bool { return s.values.WithGuest() }

// SetField overwrites one field without validating.
func (s *State) SetField(field domain.Field, value string) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	s.values.Set(field, value)
	return nil
}

// Revalidate recomputes the errors from the current values, as on blur.
func (s *State) Revalidate() domain.FormErrors {
	s.errors = CheckAll(s.values)
	return s.errors.Clone()
}

// Submit validates the whole form and moves it to the submitted state when
// nothing fails. Rejected submissions keep the form editable and return the
// failing fields.
func (s *State) Submit(ctx context.Context) (domain.FormErrors, error) {
	if s.Submitted() {
		return nil, ErrSubmitted
	}

	s.errors = CheckAll(s.values)

	err := s.machine.Event(ctx, eventSubmit)
	var canceled fsm.CanceledError
	switch {
	case err == nil, errors.As(err, &canceled):
		return s.errors.Clone(), nil
	default:
		return nil, fmt.Errorf("submit registration: %w", err)
	}
}
