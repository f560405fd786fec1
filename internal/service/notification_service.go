package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/events"
)

// NotificationService turns business events into log entries and staff alerts.
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
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventOrderStatusChanged,
		events.EventPhoneVerificationSent,
		events.EventPhoneVerificationSucceeded,
		events.EventPhoneVerificationFailed,
		events.EventPhoneVerificationResent,
		events.EventNewsletterSubscribed,
	} {
		n.dispatcher.Subscribe(eventType, n.logBusinessEvent)
	}
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventContactReceived, n.handleContactReceived)
}

func (n *NotificationService) logBusinessEvent(_ context.Context, event events.Event) error {
	n.logger.Info("business event",
		zap.String("event", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	_ = n.logBusinessEvent(ctx, event)
	n.sendAlertStub(event)
	return nil
}

func (n *NotificationService) handleContactReceived(ctx context.Context, event events.Event) error {
	_ = n.logBusinessEvent(ctx, event)
	n.sendAlertStub(event)
	return nil
}

func (n *NotificationService) sendAlertStub(event events.Event) {
	if strings.TrimSpace(n.cfg.AlertEmail) == "" {
		return
	}
	n.logger.Debug("sendAlertStub",
		zap.String("to", n.cfg.AlertEmail),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
