package domain

import (
	"strings"
	"time"
)

// Role determines which operations an account may invoke.
type Role string

const (
	RoleUser             Role = "USER"
	RoleGrievanceManager Role = "GRIEVANCE_MANAGER"
	RoleAdministrator    Role = "ADMINISTRATOR"
)

// ParseRole validates a caller-supplied role against the closed set.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleUser:
		return RoleUser, true
	case RoleGrievanceManager:
		return RoleGrievanceManager, true
	case RoleAdministrator:
		return RoleAdministrator, true
	}
	return "", false
}

// User is the domain model for accounts raising or handling grievances.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
