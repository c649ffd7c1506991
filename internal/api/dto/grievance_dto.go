package dto

import "time"

// RaiseGrievanceRequest payload for new grievances.
type RaiseGrievanceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateStatusRequest payload for status changes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GrievanceResponse is the grievance view returned to callers.
type GrievanceResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// StatusReportResponse carries per-status counts for reporting.
type StatusReportResponse struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}
