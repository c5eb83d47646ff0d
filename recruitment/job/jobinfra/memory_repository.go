package jobinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// MemoryJobRepository keeps jobs in insertion order
type MemoryJobRepository struct {
	mu    sync.RWMutex
	order []kernel.JobID
	byID  map[kernel.JobID]job.Job
}

var _ job.Repository = (*MemoryJobRepository)(nil)

func NewMemoryJobRepository(seed ...job.Job) *MemoryJobRepository {
	r := &MemoryJobRepository{byID: make(map[kernel.JobID]job.Job, len(seed))}
	for _, j := range seed {
		r.order = append(r.order, j.ID)
		r.byID[j.ID] = j
	}
	return r
}

func (r *MemoryJobRepository) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[j.ID]; exists {
		return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID.String())
	}
	r.order = append(r.order, j.ID)
	r.byID[j.ID] = *j
	return nil
}

func (r *MemoryJobRepository) Update(_ context.Context, id kernel.JobID, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; !exists {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	r.byID[id] = *j
	return nil
}

func (r *MemoryJobRepository) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return &j, nil
}

func (r *MemoryJobRepository) Delete(_ context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; !exists {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryJobRepository) List(_ context.Context) ([]job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]job.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *MemoryJobRepository) AdjustApplicationCount(_ context.Context, id kernel.JobID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	j.AdjustApplications(delta, time.Now())
	r.byID[id] = j
	return nil
}
