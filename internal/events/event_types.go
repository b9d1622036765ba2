package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/event-registration/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRegistrationChecked   EventType = "registration_checked"
	EventRegistrationRejected  EventType = "registration_rejected"
	EventRegistrationSubmitted EventType = "registration_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(eventType EventType, sessionID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// RegistrationCheckedPayload payload.
type RegistrationCheckedPayload struct {
	FailedFields []domain.Field `json:"failed_fields"`
}

// RegistrationRejectedPayload payload.
type RegistrationRejectedPayload struct {
	FailedFields []domain.Field `json:"failed_fields"`
}

// RegistrationSubmittedPayload payload.
type RegistrationSubmittedPayload struct {
	Values domain.FormValues `json:"values"`
}

// FailedFields lists the failing fields of errs in display order.
func FailedFields(errs domain.FormErrors) []domain.Field {
	out := make([]domain.Field, 0, len(errs))
	for _, field := range domain.Fields {
		if errs.Has(field) {
			out = append(out, field)
		}
	}
	return out
}
