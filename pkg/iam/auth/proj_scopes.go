package auth

import "strings"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Job board
// ============================================================================

const (
	// Job scopes
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsDelete = "jobs:delete"
	ScopeJobsStatus = "jobs:status" // Activate, pause, close
	ScopeJobsExport = "jobs:export"

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsApply  = "applications:apply"
	ScopeApplicationsOwn    = "applications:own" // View and withdraw own applications
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsReview = "applications:review" // Move through the pipeline
	ScopeApplicationsExport = "applications:export"

	// User scopes
	ScopeUsersAll   = "users:*"
	ScopeUsersRead  = "users:read"
	ScopeUsersRoles = "users:roles"

	// Dashboard
	ScopeDashboardView = "dashboard:view"
)

// Role is the account role carried in access tokens
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"Jobs": {
		ScopeJobsAll,
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsDelete,
		ScopeJobsStatus,
		ScopeJobsExport,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsApply,
		ScopeApplicationsOwn,
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeApplicationsExport,
	},
	"Users": {
		ScopeUsersAll,
		ScopeUsersRead,
		ScopeUsersRoles,
	},
	"Dashboard": {
		ScopeDashboardView,
	},
}

// RoleScopes defines what each role may do
var RoleScopes = map[Role][]string{
	RoleStudent: {
		ScopeJobsRead,
		ScopeApplicationsApply,
		ScopeApplicationsOwn,
	},
	RoleAdmin: {
		ScopeJobsAll,
		ScopeApplicationsAll,
		ScopeUsersAll,
		ScopeDashboardView,
	},
}

// ScopesFor returns the scopes granted to a role
func ScopesFor(role Role) []string {
	return append([]string(nil), RoleScopes[role]...)
}

// HasScope reports whether granted covers required, honouring "resource:*"
func HasScope(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, s := range granted {
		if s == required || s == resource+":*" || s == "*" {
			return true
		}
	}
	return false
}
