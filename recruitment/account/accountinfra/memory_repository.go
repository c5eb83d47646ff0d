package accountinfra

import (
	"context"
	"slices"
	"sync"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
)

// MemoryAccountRepository keeps accounts in registration order
type MemoryAccountRepository struct {
	mu      sync.RWMutex
	order   []kernel.UserID
	byID    map[kernel.UserID]account.UserAccount
	byEmail map[kernel.Email]kernel.UserID
}

var _ account.Repository = (*MemoryAccountRepository)(nil)

func NewMemoryAccountRepository(seed ...account.UserAccount) *MemoryAccountRepository {
	r := &MemoryAccountRepository{
		byID:    make(map[kernel.UserID]account.UserAccount, len(seed)),
		byEmail: make(map[kernel.Email]kernel.UserID, len(seed)),
	}
	for _, u := range seed {
		r.order = append(r.order, u.ID)
		r.byID[u.ID] = clone(u)
		r.byEmail[u.Email.Normalize()] = u.ID
	}
	return r
}

func (r *MemoryAccountRepository) Create(_ context.Context, u *account.UserAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := u.Email.Normalize()
	if _, taken := r.byEmail[email]; taken {
		return account.ErrEmailAlreadyExists().WithDetail("email", string(email))
	}
	r.order = append(r.order, u.ID)
	r.byID[u.ID] = clone(*u)
	r.byEmail[email] = u.ID
	return nil
}

func (r *MemoryAccountRepository) Update(_ context.Context, id kernel.UserID, u *account.UserAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, exists := r.byID[id]
	if !exists {
		return account.ErrAccountNotFound().WithDetail("user_id", id.String())
	}
	email := u.Email.Normalize()
	if owner, taken := r.byEmail[email]; taken && owner != id {
		return account.ErrEmailAlreadyExists().WithDetail("email", string(email))
	}
	delete(r.byEmail, old.Email.Normalize())
	r.byEmail[email] = id
	r.byID[id] = clone(*u)
	return nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id kernel.UserID) (*account.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, account.ErrAccountNotFound().WithDetail("user_id", id.String())
	}
	u = clone(u)
	return &u, nil
}

func (r *MemoryAccountRepository) GetByEmail(_ context.Context, email kernel.Email) (*account.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email.Normalize()]
	if !ok {
		return nil, account.ErrAccountNotFound().WithDetail("email", string(email))
	}
	u := clone(r.byID[id])
	return &u, nil
}

func (r *MemoryAccountRepository) List(_ context.Context) ([]account.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]account.UserAccount, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.byID[id]))
	}
	return out, nil
}

func clone(u account.UserAccount) account.UserAccount {
	u.Skills = slices.Clone(u.Skills)
	return u
}
