package session

import (
	"context"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

// Store persists one State per user
type Store interface {
	// Load returns the user's state, SESSION.NOT_FOUND when none is stored
	Load(ctx context.Context, userID kernel.UserID) (*State, error)

	// Save stores the user's state, refreshing its expiry
	Save(ctx context.Context, userID kernel.UserID, state State) error

	// Delete forgets the user's state
	Delete(ctx context.Context, userID kernel.UserID) error
}
