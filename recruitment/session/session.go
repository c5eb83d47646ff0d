// Package session keeps the per-user client state of the board: who is signed
// in and the filter and page of the job browser. State only changes through
// Reduce, which never mutates its input.
package session

import (
	"net/url"
	"strconv"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// AuthSlice is the signed-in user as seen by the client
type AuthSlice struct {
	Authenticated bool          `json:"authenticated"`
	UserID        kernel.UserID `json:"user_id,omitempty"`
	Email         kernel.Email  `json:"email,omitempty"`
	Role          auth.Role     `json:"role,omitempty"`
}

// ListView is the filter and page of one list screen
type ListView struct {
	Filters listx.FilterState `json:"filters"`
	Page    int               `json:"page"`
}

// State is everything a session remembers across navigation
type State struct {
	Auth AuthSlice `json:"auth"`
	Jobs ListView  `json:"jobs"`
}

// Initial is the state of a fresh session
func Initial() State {
	return State{Jobs: ListView{Page: 1}}
}

// JobsQuery is the URL query that reproduces the job browser view
func (s State) JobsQuery() string {
	values := listx.ToQuery(s.Jobs.Filters)
	if s.Jobs.Page > 1 {
		values.Set("page", strconv.Itoa(s.Jobs.Page))
	}
	return values.Encode()
}

// JobsFromQuery rebuilds a job browser view from a URL query
func JobsFromQuery(raw string) ListView {
	view := ListView{Filters: listx.FromRawQuery(raw, job.Schema.FieldNames()), Page: 1}
	if values, err := url.ParseQuery(raw); err == nil {
		if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 1 {
			view.Page = p
		}
	}
	return view
}

// Clone returns a deep copy
func (s State) Clone() State {
	return State{Auth: s.Auth, Jobs: ListView{Filters: s.Jobs.Filters.Clone(), Page: s.Jobs.Page}}
}
