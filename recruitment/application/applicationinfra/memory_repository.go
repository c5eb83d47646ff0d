package applicationinfra

import (
	"context"
	"sync"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
)

type pairKey struct {
	job       kernel.JobID
	applicant kernel.UserID
}

// MemoryApplicationRepository keeps applications in submission order
type MemoryApplicationRepository struct {
	mu     sync.RWMutex
	order  []kernel.ApplicationID
	byID   map[kernel.ApplicationID]application.Application
	byPair map[pairKey]kernel.ApplicationID
}

var _ application.Repository = (*MemoryApplicationRepository)(nil)

func NewMemoryApplicationRepository(seed ...application.Application) *MemoryApplicationRepository {
	r := &MemoryApplicationRepository{
		byID:   make(map[kernel.ApplicationID]application.Application, len(seed)),
		byPair: make(map[pairKey]kernel.ApplicationID, len(seed)),
	}
	for _, a := range seed {
		r.order = append(r.order, a.ID)
		r.byID[a.ID] = clone(a)
		r.byPair[pairKey{a.JobID, a.ApplicantID}] = a.ID
	}
	return r
}

func (r *MemoryApplicationRepository) Create(_ context.Context, a *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{a.JobID, a.ApplicantID}
	if _, taken := r.byPair[key]; taken {
		return application.ErrAlreadyApplied().
			WithDetail("job_id", a.JobID.String()).
			WithDetail("applicant_id", a.ApplicantID.String())
	}
	if _, exists := r.byID[a.ID]; exists {
		return application.ErrAlreadyApplied().WithDetail("application_id", a.ID.String())
	}
	r.order = append(r.order, a.ID)
	r.byID[a.ID] = clone(*a)
	r.byPair[key] = a.ID
	return nil
}

func (r *MemoryApplicationRepository) Update(_ context.Context, id kernel.ApplicationID, a *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, exists := r.byID[id]
	if !exists {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	updated := clone(*a)
	updated.ID = id
	updated.JobID, updated.ApplicantID = old.JobID, old.ApplicantID
	r.byID[id] = updated
	return nil
}

func (r *MemoryApplicationRepository) GetByID(_ context.Context, id kernel.ApplicationID) (*application.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	a = clone(a)
	return &a, nil
}

func (r *MemoryApplicationRepository) Delete(_ context.Context, id kernel.ApplicationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, exists := r.byID[id]
	if !exists {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	delete(r.byID, id)
	delete(r.byPair, pairKey{a.JobID, a.ApplicantID})
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryApplicationRepository) List(_ context.Context) ([]application.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]application.Application, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.byID[id]))
	}
	return out, nil
}

func (r *MemoryApplicationRepository) ExistsByJobAndApplicant(_ context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byPair[pairKey{jobID, applicantID}]
	return ok, nil
}

// clone detaches the optional fields from the stored copy
func clone(a application.Application) application.Application {
	if a.Note != nil {
		n := *a.Note
		a.Note = &n
	}
	if a.UpdatedAt != nil {
		t := *a.UpdatedAt
		a.UpdatedAt = &t
	}
	return a
}
