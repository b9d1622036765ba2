package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/form"
	"github.com/spec-kit/event-registration/internal/observability"
	"github.com/spec-kit/event-registration/internal/session"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// Session is an open form session.
type Session struct {
	ID    string
	State *form.State
	// Created is set when the session did not exist before this request.
	Created bool
}

// FieldUpdate is one change event from the form.
type FieldUpdate struct {
	Field domain.Field
	Value string
}

// RegistrationService drives form sessions: edits, blur checks and submission.
type RegistrationService struct {
	store      session.Store
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	locks      *sessionLocks
}

// RegistrationDependencies bundles the collaborators of RegistrationService.
type RegistrationDependencies struct {
	Store      session.Store
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewRegistrationService builds the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		locks:      newSessionLocks(),
	}
}

// Open loads the session with id, or starts a new one when id is unknown,
// malformed or expired.
func (s *RegistrationService) Open(ctx context.Context, id string) (*Session, error) {
	if session.ValidID(id) {
		snap, err := s.store.Load(ctx, id)
		switch {
		case err == nil:
			return &Session{ID: id, State: form.Restore(snap)}, nil
		case !errors.Is(err, session.ErrNotFound):
			return nil, apperrors.NewInternalError(err)
		}
	}

	sess := &Session{ID: session.NewID(), State: form.New(), Created: true}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Debug("session started", zap.String("session_id", sess.ID))
	return sess, nil
}

// Edit opens the session with id and runs fn on it while holding the
// session's lock, so concurrent posts for one session are applied one after
// another within this process. Sessions shared across replicas through Redis
// are still last-write-wins.
func (s *RegistrationService) Edit(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	if session.ValidID(id) {
		unlock := s.locks.lock(id)
		defer unlock()
	}

	sess, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ApplyFields overwrites the given fields without validating them.
func (s *RegistrationService) ApplyFields(ctx context.Context, sess *Session, updates []FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		if err := sess.State.SetField(u.Field, u.Value); err != nil {
			return mapStateError(err)
		}
	}
	return s.save(ctx, sess)
}

// Check revalidates the whole form, as triggered by leaving a field.
func (s *RegistrationService) Check(ctx context.Context, sess *Session) (domain.FormErrors, error) {
	if sess.State.Submitted() {
		return domain.FormErrors{}, nil
	}

	errs := sess.State.Revalidate()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.metrics.RecordCheck(errs)
	s.publish(ctx, events.NewEvent(events.EventRegistrationChecked, sess.ID, events.RegistrationCheckedPayload{
		FailedFields: events.FailedFields(errs),
	}))
	return errs, nil
}

// Submit validates the form and, when every rule passes, moves the session to
// its read-only summary. The returned errors are empty on success.
func (s *RegistrationService) Submit(ctx context.Context, sess *Session) (domain.FormErrors, error) {
	errs, err := sess.State.Submit(ctx)
	if err != nil {
		return nil, mapStateError(err)
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.metrics.RecordSubmission(errs)
	if errs.Empty() {
		s.logger.Info("registration submitted", zap.String("session_id", sess.ID))
		s.publish(ctx, events.NewEvent(events.EventRegistrationSubmitted, sess.ID, events.RegistrationSubmittedPayload{
			Values: sess.State.Values(),
		}))
		return errs, nil
	}

	s.publish(ctx, events.NewEvent(events.EventRegistrationRejected, sess.ID, events.RegistrationRejectedPayload{
		FailedFields: events.FailedFields(errs),
	}))
	return errs, nil
}

func (s *RegistrationService) save(ctx context.Context, sess *Session) error {
	if err := s.store.Save(ctx, sess.ID, sess.State.Snapshot()); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("persist session: %w", err))
	}
	return nil
}

func (s *RegistrationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
	}
}

func mapStateError(err error) error {
	if errors.Is(err, form.ErrSubmitted) {
		return apperrors.NewConflict("registration already submitted", nil)
	}
	return apperrors.NewInternalError(err)
}
