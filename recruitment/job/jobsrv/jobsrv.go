package jobsrv

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/shiftboard/internal/metrics"
	"github.com/Abraxas-365/shiftboard/pkg/asyncx"
	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/exportx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
	"github.com/Abraxas-365/shiftboard/pkg/validatex"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// DefaultPageSize is the size of the job browsing grid
const DefaultPageSize = 9

// JobService provides business operations for jobs
type JobService struct {
	jobRepo   job.Repository
	machine   *statusx.Machine[job.JobStatus]
	simulator *asyncx.Simulator
	archive   *exportx.Archive
	metrics   *metrics.Recorder
	clock     func() time.Time
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	machine *statusx.Machine[job.JobStatus],
	simulator *asyncx.Simulator,
	archive *exportx.Archive,
	recorder *metrics.Recorder,
) *JobService {
	return &JobService{
		jobRepo:   jobRepo,
		machine:   machine,
		simulator: simulator,
		archive:   archive,
		metrics:   recorder,
		clock:     time.Now,
	}
}

// CreateJob creates a new job posting
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	now := s.clock()
	newJob := &job.Job{
		ID:          kernel.NewJobID(uuid.NewString()),
		Title:       req.Title,
		Employer:    req.Employer,
		Location:    req.Location,
		Category:    req.Category,
		Type:        req.Type,
		Salary:      req.Salary,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      job.JobStatusDraft, // Start as draft
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	return newJob, nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error) {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := jobEntity.ToResponse()
	return &resp, nil
}

// ListJobs filters the whole collection then slices the requested page
func (s *JobService) ListJobs(ctx context.Context, req job.ListJobsRequest) (*job.PaginatedJobsResponse, error) {
	all, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	filtered := listx.Filter(all, job.Schema, req.Filters)
	page := kernel.Paginate(filtered, req.Pagination.Normalize(DefaultPageSize))

	return &job.PaginatedJobsResponse{
		Paginated: kernel.MapPaginated(page, job.Job.ToResponse),
		Filters:   req.Filters,
		Query:     listx.Encode(req.Filters),
	}, nil
}

// Facets returns the distinct filter values present in the collection
func (s *JobService) Facets(ctx context.Context) (*job.FacetsResponse, error) {
	all, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	return &job.FacetsResponse{
		Facets:   listx.Facets(all, job.Schema),
		Statuses: s.machine.Statuses(),
		Types:    job.JobTypes,
	}, nil
}

// UpdateJob updates an existing job
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if jobEntity.UpdateDetails(req, s.clock()) {
		if err := validatex.Struct(jobEntity); err != nil {
			return nil, err
		}
		if err := s.jobRepo.Update(ctx, jobID, jobEntity); err != nil {
			return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
		}
	}

	return jobEntity, nil
}

// ChangeStatus moves a job to another status through the action simulator.
// The job is untouched when the simulated action fails.
func (s *JobService) ChangeStatus(ctx context.Context, jobID kernel.JobID, raw job.JobStatus) (*job.Job, error) {
	target, err := s.machine.Parse(string(raw))
	if err != nil {
		s.metrics.Transition("job", metrics.UnknownStatus, err)
		return nil, err
	}

	current, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.machine.Check(current.Status, target); err != nil {
		s.metrics.Transition("job", string(target), err)
		return nil, err
	}

	var updated *job.Job
	err = s.simulator.Run(ctx, actionKey(jobID), func(ctx context.Context) error {
		latest, err := s.jobRepo.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		if err := s.machine.Check(latest.Status, target); err != nil {
			return err
		}
		latest.SetStatus(target, s.clock())
		if err := s.jobRepo.Update(ctx, jobID, latest); err != nil {
			return errx.Wrap(err, "failed to update job status", errx.TypeInternal)
		}
		updated = latest
		return nil
	})
	s.metrics.Transition("job", string(target), err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// IsBusy reports whether a status change for the job is in flight
func (s *JobService) IsBusy(jobID kernel.JobID) bool {
	return s.simulator.Busy(actionKey(jobID))
}

// DeleteJob deletes a job without applications
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID) error {
	jobEntity, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if jobEntity.HasApplications() {
		return job.ErrJobHasApplications().
			WithDetail("job_id", jobID.String()).
			WithDetail("application_count", jobEntity.ApplicationCount)
	}

	return s.jobRepo.Delete(ctx, jobID)
}

// ExportCSV renders every job matching filters and archives the file
func (s *JobService) ExportCSV(ctx context.Context, filters listx.FilterState) (*exportx.Export, error) {
	all, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	data, err := exportx.EncodeCSV(csvColumns, listx.Filter(all, job.Schema, filters))
	if err != nil {
		return nil, err
	}
	exp, err := s.archive.Store(ctx, "jobs", data)
	if err != nil {
		return nil, errx.Wrap(err, "failed to archive export", errx.TypeInternal)
	}
	s.metrics.Export("jobs")
	return exp, nil
}

var csvColumns = []exportx.Column[job.Job]{
	{Header: "id", Value: func(j job.Job) string { return j.ID.String() }},
	{Header: "title", Value: func(j job.Job) string { return string(j.Title) }},
	{Header: "employer", Value: func(j job.Job) string { return string(j.Employer) }},
	{Header: "location", Value: func(j job.Job) string { return string(j.Location) }},
	{Header: "category", Value: func(j job.Job) string { return string(j.Category) }},
	{Header: "type", Value: func(j job.Job) string { return string(j.Type) }},
	{Header: "salary", Value: func(j job.Job) string { return j.Salary.String() }},
	{Header: "deadline", Value: func(j job.Job) string { return j.Deadline.Format(time.DateOnly) }},
	{Header: "status", Value: func(j job.Job) string { return string(j.Status) }},
	{Header: "applications", Value: func(j job.Job) string { return strconv.Itoa(j.ApplicationCount) }},
}

func actionKey(id kernel.JobID) string {
	return "job:" + id.String()
}
