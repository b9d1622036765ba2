package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRegistrationSubmitted, n.handleSubmitted)
	n.dispatcher.Subscribe(events.EventRegistrationRejected, n.handleRejected)
	n.dispatcher.Subscribe(events.EventRegistrationChecked, n.handleChecked)
}

func (n *NotificationService) handleSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("RegistrationSubmitted", zap.String("session_id", event.SessionID), zap.String("event_id", event.ID))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRejected(_ context.Context, event events.Event) error {
	n.logger.Info("RegistrationRejected", zap.String("session_id", event.SessionID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleChecked(_ context.Context, event events.Event) error {
	n.logger.Debug("RegistrationChecked", zap.String("session_id", event.SessionID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("session_id", event.SessionID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("session_id", event.SessionID),
		zap.String("event_type", string(event.Type)))
}
