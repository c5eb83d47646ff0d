package session

import (
	"slices"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// ActionType names a state change
type ActionType string

const (
	ActionLogin       ActionType = "auth/login"
	ActionLogout      ActionType = "auth/logout"
	ActionSetSearch   ActionType = "filters/set_search"
	ActionSetField    ActionType = "filters/set_field"
	ActionToggleValue ActionType = "filters/toggle_value"
	ActionClear       ActionType = "filters/clear"
	ActionSetPage     ActionType = "page/set"
)

// Action is one dispatched state change. Only the fields its type reads are used.
type Action struct {
	Type   ActionType `json:"type" validate:"required"`
	Search string     `json:"search,omitempty"`
	Field  string     `json:"field,omitempty"`
	Values []string   `json:"values,omitempty"`
	Value  string     `json:"value,omitempty"`
	Page   int        `json:"page,omitempty"`

	UserID kernel.UserID `json:"-"`
	Email  kernel.Email  `json:"-"`
	Role   auth.Role     `json:"-"`
}

// Login builds the action that signs a user in
func Login(userID kernel.UserID, email kernel.Email, role auth.Role) Action {
	return Action{Type: ActionLogin, UserID: userID, Email: email, Role: role}
}

// ============================================================================
// Reducers
// ============================================================================

// ReduceAuth applies auth actions
func ReduceAuth(s AuthSlice, a Action) AuthSlice {
	switch a.Type {
	case ActionLogin:
		if a.UserID.IsEmpty() {
			return s
		}
		return AuthSlice{Authenticated: true, UserID: a.UserID, Email: a.Email, Role: a.Role}
	case ActionLogout:
		return AuthSlice{}
	default:
		return s
	}
}

// ReduceList applies filter and page actions to a list view whose filterable
// fields are fields. Filter changes go back to page 1; selections for fields
// outside fields are ignored.
func ReduceList(v ListView, a Action, fields []string) ListView {
	switch a.Type {
	case ActionSetSearch:
		return ListView{Filters: v.Filters.WithSearch(a.Search), Page: 1}
	case ActionSetField:
		if !slices.Contains(fields, a.Field) {
			return v
		}
		return ListView{Filters: v.Filters.WithField(a.Field, a.Values...), Page: 1}
	case ActionToggleValue:
		if !slices.Contains(fields, a.Field) || a.Value == "" {
			return v
		}
		return ListView{Filters: v.Filters.Toggle(a.Field, a.Value), Page: 1}
	case ActionClear:
		return ListView{Filters: listx.FilterState{}, Page: 1}
	case ActionSetPage:
		return ListView{Filters: v.Filters.Clone(), Page: max(1, a.Page)}
	default:
		return v
	}
}

// Reduce applies a to every slice. Unknown actions return s unchanged and
// logging out also resets the job browser.
func Reduce(s State, a Action) State {
	next := State{
		Auth: ReduceAuth(s.Auth, a),
		Jobs: ReduceList(s.Jobs, a, job.Schema.FieldNames()),
	}
	if a.Type == ActionLogout {
		next.Jobs = Initial().Jobs
	}
	return next
}

// ReduceAll applies actions in order
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}
