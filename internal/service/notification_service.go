package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/events"
)

// NotificationService reacts to domain events. Delivery is a structured
// log line; a real channel (email, webhook) can hang off the same
// subscriptions.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the events worth notifying on.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventGrievanceRaised, s.onGrievanceRaised)
	s.dispatcher.Subscribe(events.EventGrievanceStatusChanged, s.onStatusChanged)
	s.dispatcher.Subscribe(events.EventUserRoleChanged, s.onRoleChanged)
}

func (s *NotificationService) onGrievanceRaised(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceRaisedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("grievance raised",
		zap.Int64("grievance_id", payload.GrievanceID),
		zap.Int64("raised_by", event.Actor.UserID),
		zap.String("title", payload.Title),
	)
	return nil
}

func (s *NotificationService) onStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.GrievanceStatusChangedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("grievance status changed",
		zap.Int64("grievance_id", payload.GrievanceID),
		zap.String("new_status", string(payload.NewStatus)),
		zap.Int64("changed_by", event.Actor.UserID),
	)
	return nil
}

func (s *NotificationService) onRoleChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRoleChangedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("user role changed",
		zap.Int64("user_id", payload.TargetUserID),
		zap.String("new_role", string(payload.NewRole)),
		zap.Int64("changed_by", event.Actor.UserID),
	)
	return nil
}
