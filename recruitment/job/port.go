package job

import (
	"context"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, job *Job) error

	// Update replaces an existing job
	Update(ctx context.Context, id kernel.JobID, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// List returns every job in insertion order
	List(ctx context.Context) ([]Job, error)

	// AdjustApplicationCount adds delta to the job's application count
	AdjustApplicationCount(ctx context.Context, id kernel.JobID, delta int) error
}
