package events

import (
	"time"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventGrievanceRaised        EventType = "grievance_raised"
	EventGrievanceStatusChanged EventType = "grievance_status_changed"
	EventUserRoleChanged        EventType = "user_role_changed"
	EventUserDeleted            EventType = "user_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// GrievanceRaisedPayload payload.
type GrievanceRaisedPayload struct {
	GrievanceID int64  `json:"grievance_id"`
	Title       string `json:"title"`
}

// GrievanceStatusChangedPayload payload.
type GrievanceStatusChangedPayload struct {
	GrievanceID int64                  `json:"grievance_id"`
	NewStatus   domain.GrievanceStatus `json:"new_status"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	TargetUserID int64       `json:"target_user_id"`
	NewRole      domain.Role `json:"new_role"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	TargetUserID int64 `json:"target_user_id"`
}
