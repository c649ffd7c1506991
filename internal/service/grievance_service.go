package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/cache"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/util/errorutil"
)

// GrievanceService coordinates the grievance lifecycle.
//
// The status graph is deliberately unrestricted: the update path may set
// IN_PROGRESS or RESOLVED from any current state, so RESOLVED is not
// terminal. Tightening to a forward-only graph would be a behavior
// change and is not done here.
type GrievanceService struct {
	grievances repository.GrievanceRepository
	reports    *cache.StatusCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewGrievanceService constructs the service. The report cache and
// dispatcher may be nil.
func NewGrievanceService(grievances repository.GrievanceRepository, reports *cache.StatusCache, dispatcher events.Dispatcher, logger *zap.Logger) *GrievanceService {
	return &GrievanceService{
		grievances: grievances,
		reports:    reports,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Raise files a new grievance for the given user. Status is always OPEN
// and the resolution timestamp is unset, whatever the caller supplies.
func (s *GrievanceService) Raise(ctx context.Context, actor *domain.User, title, description string) (*domain.Grievance, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description must not be empty", nil)
	}
	// the title bound counts characters, not bytes
	if utf8.RuneCountInString(title) > domain.TitleMaxLength {
		return nil, apperrors.NewValidationError("title too long", map[string]any{
			"max_length": domain.TitleMaxLength,
		})
	}

	grievance := &domain.Grievance{
		UserID:      actor.ID,
		Title:       title,
		Description: description,
		Status:      domain.GrievanceStatusOpen,
	}
	if err := s.grievances.Create(ctx, grievance); err != nil {
		s.logger.Error("grievance insert failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.reports.Invalidate(ctx)
	s.publish(ctx, actor, events.EventGrievanceRaised, events.GrievanceRaisedPayload{
		GrievanceID: grievance.ID,
		Title:       grievance.Title,
	})
	return grievance, nil
}

// List returns every grievance, newest first.
func (s *GrievanceService) List(ctx context.Context) ([]domain.Grievance, error) {
	grievances, err := s.grievances.List(ctx)
	if err != nil {
		s.logger.Error("grievance list failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return grievances, nil
}

// ListByUser returns the grievances raised by one user, newest first.
func (s *GrievanceService) ListByUser(ctx context.Context, userID int64) ([]domain.Grievance, error) {
	grievances, err := s.grievances.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("grievance list by user failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return grievances, nil
}

// Search matches the keyword case-insensitively against titles and
// descriptions. No match is an empty result, not a failure.
func (s *GrievanceService) Search(ctx context.Context, keyword string) ([]domain.Grievance, error) {
	grievances, err := s.grievances.Search(ctx, keyword)
	if err != nil {
		s.logger.Error("grievance search failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return grievances, nil
}

// UpdateStatus moves a grievance to IN_PROGRESS or RESOLVED. OPEN is a
// creation default only and is never an update target. Resolution sets
// the resolution timestamp; any other accepted target clears it.
func (s *GrievanceService) UpdateStatus(ctx context.Context, actor *domain.User, grievanceID int64, statusValue string) error {
	status, ok := domain.ParseGrievanceStatus(statusValue)
	if !ok || status == domain.GrievanceStatusOpen {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": statusValue})
	}

	var resolvedAt *time.Time
	if status == domain.GrievanceStatusResolved {
		now := time.Now()
		resolvedAt = &now
	}

	if err := s.grievances.UpdateStatus(ctx, grievanceID, status, resolvedAt); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("grievance", map[string]any{"id": grievanceID})
		}
		s.logger.Error("status update failed", zap.Error(err))
		return apperrors.NewStoreUnavailable(err)
	}

	s.reports.Invalidate(ctx)
	s.publish(ctx, actor, events.EventGrievanceStatusChanged, events.GrievanceStatusChangedPayload{
		GrievanceID: grievanceID,
		NewStatus:   status,
	})
	return nil
}

// CountByStatus reports how many grievances carry the given status.
func (s *GrievanceService) CountByStatus(ctx context.Context, status domain.GrievanceStatus) (int64, error) {
	count, err := s.grievances.CountByStatus(ctx, status)
	if err != nil {
		s.logger.Error("status count failed", zap.Error(err))
		return 0, apperrors.NewStoreUnavailable(err)
	}
	return count, nil
}

// StatusReport returns per-status counts, served from cache when warm.
func (s *GrievanceService) StatusReport(ctx context.Context) (map[domain.GrievanceStatus]int64, error) {
	if counts, ok := s.reports.Get(ctx); ok {
		return counts, nil
	}

	counts, err := s.grievances.StatusCounts(ctx)
	if err != nil {
		s.logger.Error("status report failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	s.reports.Set(ctx, counts)
	return counts, nil
}

func (s *GrievanceService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, payload any) {
	if s.dispatcher == nil || actor == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
