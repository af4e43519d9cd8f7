package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/church-service/internal/events"
	"github.com/spec-kit/church-service/internal/repository"
)

// AuditService persists security events emitted by the auth service. Failed
// writes are logged and dropped; auditing never fails the triggering request.
type AuditService struct {
	dispatcher events.Dispatcher
	audits     repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, audits repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		audits:     audits,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every security event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventTokenRefreshed,
		events.EventRefreshReuseDetected,
		events.EventLoggedOut,
	} {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	entry := &repository.AuditEntry{
		EventType: string(event.Type),
	}
	if event.UserID != "" {
		entry.UserID = &event.UserID
	}
	if event.Payload != nil {
		detail, err := json.Marshal(event.Payload)
		if err == nil {
			entry.Detail = detail
		}
	}

	if err := a.audits.Insert(ctx, entry); err != nil {
		a.logger.Warn("audit write failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
