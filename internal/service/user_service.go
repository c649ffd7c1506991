package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/util/errorutil"
)

// UserService covers administrator-driven account management.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Provision creates an account with an explicit role. Unknown role
// values never reach the store.
func (s *UserService) Provision(ctx context.Context, username, password, roleValue string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("username and password must not be empty", nil)
	}
	role, ok := domain.ParseRole(roleValue)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": roleValue})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateUsername(username)
		}
		s.logger.Error("user insert failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return user, nil
}

// List returns all accounts ordered by id ascending.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("user list failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return users, nil
}

// UpdateRole changes an account's role.
func (s *UserService) UpdateRole(ctx context.Context, actor *domain.User, userID int64, roleValue string) error {
	role, ok := domain.ParseRole(roleValue)
	if !ok {
		return apperrors.NewValidationError("invalid role", map[string]any{"role": roleValue})
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		s.logger.Error("role update failed", zap.Error(err))
		return apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, actor, events.EventUserRoleChanged, events.UserRoleChangedPayload{
		TargetUserID: userID,
		NewRole:      role,
	})
	return nil
}

// Delete removes an account. The account's grievances are not touched.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		s.logger.Error("user delete failed", zap.Error(err))
		return apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, actor, events.EventUserDeleted, events.UserDeletedPayload{
		TargetUserID: userID,
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, payload any) {
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
