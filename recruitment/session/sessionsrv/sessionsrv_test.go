package sessionsrv

import (
	"context"
	"testing"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
	"github.com/Abraxas-365/shiftboard/recruitment/session/sessioninfra"
)

var caller = &auth.AuthContext{UserID: "u1", Email: "u1@example.com", Role: auth.RoleStudent}

func TestCurrentStartsSignedInSession(t *testing.T) {
	svc := NewSessionService(sessioninfra.NewMemoryStore(0))
	state, err := svc.Current(context.Background(), caller)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !state.Auth.Authenticated || state.Auth.UserID != "u1" || state.Jobs.Page != 1 {
		t.Fatalf("state = %+v", state)
	}
}

func TestDispatchPersists(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(sessioninfra.NewMemoryStore(0))

	_, err := svc.Dispatch(ctx, caller, session.DispatchRequest{Actions: []session.Action{
		{Type: session.ActionSetSearch, Search: "waiter"},
		{Type: session.ActionSetPage, Page: 2},
	}})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	state, err := svc.Current(ctx, caller)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if state.Jobs.Filters.Search != "waiter" || state.Jobs.Page != 2 {
		t.Fatalf("state = %+v", state.Jobs)
	}
}

func TestDispatchRejectsLogin(t *testing.T) {
	svc := NewSessionService(sessioninfra.NewMemoryStore(0))
	_, err := svc.Dispatch(context.Background(), caller, session.DispatchRequest{Actions: []session.Action{
		{Type: session.ActionLogin},
	}})
	if !errx.IsCode(err, session.CodeReservedAction) {
		t.Fatalf("expected reserved action, got %v", err)
	}
}

func TestDispatchValidates(t *testing.T) {
	svc := NewSessionService(sessioninfra.NewMemoryStore(0))
	if _, err := svc.Dispatch(context.Background(), caller, session.DispatchRequest{}); err == nil {
		t.Fatal("expected validation error for empty actions")
	}
}

func TestLogoutForgetsState(t *testing.T) {
	ctx := context.Background()
	store := sessioninfra.NewMemoryStore(0)
	svc := NewSessionService(store)

	if _, err := svc.Dispatch(ctx, caller, session.DispatchRequest{Actions: []session.Action{
		{Type: session.ActionSetSearch, Search: "chef"},
	}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	state, err := svc.Dispatch(ctx, caller, session.DispatchRequest{Actions: []session.Action{
		{Type: session.ActionLogout},
	}})
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if state.Auth.Authenticated || state.Jobs.Filters.Search != "" {
		t.Fatalf("state after logout = %+v", state)
	}
	if _, err := store.Load(ctx, caller.UserID); !errx.IsCode(err, session.CodeSessionNotFound) {
		t.Fatalf("expected stored state to be gone, got %v", err)
	}
}

func TestRestoreFromQuery(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(sessioninfra.NewMemoryStore(0))

	state, err := svc.Restore(ctx, caller, "search=hotel&status=active%2Cpaused&page=3&bogus=1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !state.Auth.Authenticated || state.Jobs.Filters.Search != "hotel" || state.Jobs.Page != 3 {
		t.Fatalf("state = %+v", state)
	}
	if got := state.JobsQuery(); got != "page=3&search=hotel&status=active%2Cpaused" {
		t.Fatalf("query = %q", got)
	}

	stored, err := svc.Current(ctx, caller)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if stored.JobsQuery() != state.JobsQuery() {
		t.Fatalf("stored query = %q", stored.JobsQuery())
	}
}
