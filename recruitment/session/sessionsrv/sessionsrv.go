package sessionsrv

import (
	"context"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/validatex"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
)

// SessionService loads, reduces and stores session state
type SessionService struct {
	store session.Store
}

// NewSessionService creates a new instance of the session service
func NewSessionService(store session.Store) *SessionService {
	return &SessionService{
		store: store,
	}
}

// Current returns the caller's state, starting a signed-in session when none is stored
func (s *SessionService) Current(ctx context.Context, caller *auth.AuthContext) (*session.State, error) {
	state, err := s.store.Load(ctx, caller.UserID)
	if err == nil {
		return state, nil
	}
	if !errx.IsCode(err, session.CodeSessionNotFound) {
		return nil, err
	}

	fresh := session.Reduce(session.Initial(), session.Login(caller.UserID, caller.Email, caller.Role))
	if err := s.store.Save(ctx, caller.UserID, fresh); err != nil {
		return nil, errx.Wrap(err, "failed to save session", errx.TypeInternal)
	}
	return &fresh, nil
}

// Restore replaces the job browser view with the one encoded in a URL query
// and stores the result. The signed-in user is kept.
func (s *SessionService) Restore(ctx context.Context, caller *auth.AuthContext, rawQuery string) (*session.State, error) {
	state, err := s.Current(ctx, caller)
	if err != nil {
		return nil, err
	}
	next := state.Clone()
	next.Jobs = session.JobsFromQuery(rawQuery)
	if err := s.store.Save(ctx, caller.UserID, next); err != nil {
		return nil, errx.Wrap(err, "failed to save session", errx.TypeInternal)
	}
	return &next, nil
}

// Dispatch applies client actions in order and stores the result. Login is
// derived from the access token and cannot be dispatched; logout forgets the
// stored state.
func (s *SessionService) Dispatch(ctx context.Context, caller *auth.AuthContext, req session.DispatchRequest) (*session.State, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}
	for _, a := range req.Actions {
		if a.Type == session.ActionLogin {
			return nil, session.ErrReservedAction().WithDetail("type", string(a.Type))
		}
	}

	state, err := s.Current(ctx, caller)
	if err != nil {
		return nil, err
	}
	next := session.ReduceAll(*state, req.Actions...)

	if !next.Auth.Authenticated {
		if err := s.store.Delete(ctx, caller.UserID); err != nil {
			return nil, errx.Wrap(err, "failed to delete session", errx.TypeInternal)
		}
		return &next, nil
	}
	if err := s.store.Save(ctx, caller.UserID, next); err != nil {
		return nil, errx.Wrap(err, "failed to save session", errx.TypeInternal)
	}
	return &next, nil
}
