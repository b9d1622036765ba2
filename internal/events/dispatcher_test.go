package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-registration/internal/domain"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventRegistrationSubmitted, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventRegistrationChecked, func(context.Context, Event) error {
		t.Fatal("unexpected handler for other event type")
		return nil
	})

	event := NewEvent(EventRegistrationSubmitted, "sess-1", RegistrationSubmittedPayload{})
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, got, 1)
	require.Equal(t, "sess-1", got[0].SessionID)
	require.NotEmpty(t, got[0].ID)
}

func TestDispatcher_RunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventRegistrationRejected, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventRegistrationRejected, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventRegistrationRejected, "s", nil))

	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls)
}

func TestFailedFields_DisplayOrder(t *testing.T) {
	errs := domain.FormErrors{
		domain.FieldGuestName: "Guest Name is required",
		domain.FieldName:      "Name is required",
		domain.FieldAge:       "Age is required",
	}

	require.Equal(t, []domain.Field{domain.FieldName, domain.FieldAge, domain.FieldGuestName}, FailedFields(errs))
}
