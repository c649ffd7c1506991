package authz

import "github.com/spec-kit/grievance-service/internal/domain"

// Operation identifies an action a caller may request.
type Operation string

const (
	OpRaiseGrievance        Operation = "raise_grievance"
	OpViewOwnGrievances     Operation = "view_own_grievances"
	OpViewAllGrievances     Operation = "view_all_grievances"
	OpSearchGrievances      Operation = "search_grievances"
	OpUpdateGrievanceStatus Operation = "update_grievance_status"
	OpManageUsers           Operation = "manage_users"
	OpViewReports           Operation = "view_reports"
)

// permissions is the static role/operation table. Only USER raises
// grievances; only GRIEVANCE_MANAGER and ADMINISTRATOR update status or
// read reports; user management is ADMINISTRATOR-only. Every role may
// view and search all grievances.
var permissions = map[domain.Role]map[Operation]struct{}{
	domain.RoleUser: {
		OpRaiseGrievance:    {},
		OpViewOwnGrievances: {},
		OpViewAllGrievances: {},
		OpSearchGrievances:  {},
	},
	domain.RoleGrievanceManager: {
		OpViewAllGrievances:     {},
		OpSearchGrievances:      {},
		OpUpdateGrievanceStatus: {},
		OpViewReports:           {},
	},
	domain.RoleAdministrator: {
		OpViewAllGrievances:     {},
		OpSearchGrievances:      {},
		OpUpdateGrievanceStatus: {},
		OpManageUsers:           {},
		OpViewReports:           {},
	},
}

// Allowed reports whether the role may perform the operation. Roles
// outside the closed set are denied everything.
func Allowed(role domain.Role, op Operation) bool {
	ops, ok := permissions[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}
