package sessioninfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
)

type entry struct {
	state     session.State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[kernel.UserID]entry
	clock func() time.Time
}

var _ session.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose sessions expire after ttl of inactivity.
// A ttl of zero keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, items: make(map[kernel.UserID]entry), clock: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, userID kernel.UserID) (*session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[userID]
	if !ok || (!e.expiresAt.IsZero() && !m.clock().Before(e.expiresAt)) {
		delete(m.items, userID)
		return nil, session.ErrSessionNotFound().WithDetail("user_id", userID.String())
	}
	state := e.state.Clone()
	return &state, nil
}

func (m *MemoryStore) Save(_ context.Context, userID kernel.UserID, state session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{state: state.Clone()}
	if m.ttl > 0 {
		e.expiresAt = m.clock().Add(m.ttl)
	}
	m.items[userID] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID kernel.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, userID)
	return nil
}
