package domain

import (
	"strings"
	"time"
)

// GrievanceStatus enumerates lifecycle states for grievances.
type GrievanceStatus string

const (
	GrievanceStatusOpen       GrievanceStatus = "OPEN"
	GrievanceStatusInProgress GrievanceStatus = "IN_PROGRESS"
	GrievanceStatusResolved   GrievanceStatus = "RESOLVED"
)

// TitleMaxLength bounds grievance titles, matching the column width.
const TitleMaxLength = 255

// ParseGrievanceStatus validates a status value against the closed set.
func ParseGrievanceStatus(value string) (GrievanceStatus, bool) {
	switch GrievanceStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case GrievanceStatusOpen:
		return GrievanceStatusOpen, true
	case GrievanceStatusInProgress:
		return GrievanceStatusInProgress, true
	case GrievanceStatusResolved:
		return GrievanceStatusResolved, true
	}
	return "", false
}

// Grievance is the aggregate for complaints raised by users.
//
// ResolvedAt is non-nil exactly when Status is RESOLVED. UserID is the
// raiser and never changes after creation; it is informational only and
// survives deletion of the account it points at.
type Grievance struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      GrievanceStatus
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
