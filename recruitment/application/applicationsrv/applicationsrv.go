package applicationsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Abraxas-365/shiftboard/internal/metrics"
	"github.com/Abraxas-365/shiftboard/pkg/asyncx"
	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/exportx"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
	"github.com/Abraxas-365/shiftboard/pkg/validatex"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// DefaultPageSize is the size of the admin application table
const DefaultPageSize = 10

// bulkConcurrency bounds the status changes a bulk request runs at once
const bulkConcurrency = 8

// ApplicationService provides business operations for applications
type ApplicationService struct {
	appRepo     application.Repository
	jobRepo     job.Repository
	accountRepo account.Repository
	machine     *statusx.Machine[application.ApplicationStatus]
	simulator   *asyncx.Simulator
	archive     *exportx.Archive
	metrics     *metrics.Recorder
	clock       func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	appRepo application.Repository,
	jobRepo job.Repository,
	accountRepo account.Repository,
	machine *statusx.Machine[application.ApplicationStatus],
	simulator *asyncx.Simulator,
	archive *exportx.Archive,
	recorder *metrics.Recorder,
) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		jobRepo:     jobRepo,
		accountRepo: accountRepo,
		machine:     machine,
		simulator:   simulator,
		archive:     archive,
		metrics:     recorder,
		clock:       time.Now,
	}
}

// ============================================================================
// Submission
// ============================================================================

// Apply submits the applicant's candidacy for an open job and bumps the job's
// application count
func (s *ApplicationService) Apply(ctx context.Context, applicantID kernel.UserID, req application.ApplyRequest) (*application.Application, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	jobEntity, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if err := jobEntity.AcceptsApplications(s.clock()); err != nil {
		return nil, err
	}

	applicant, err := s.accountRepo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	exists, err := s.appRepo.ExistsByJobAndApplicant(ctx, req.JobID, applicantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check existing application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrAlreadyApplied().
			WithDetail("job_id", req.JobID.String()).
			WithDetail("applicant_id", applicantID.String())
	}

	var created *application.Application
	err = s.simulator.Run(ctx, "apply:"+req.JobID.String()+":"+applicantID.String(), func(ctx context.Context) error {
		newApp := &application.Application{
			ID:             kernel.NewApplicationID(uuid.NewString()),
			JobID:          jobEntity.ID,
			ApplicantID:    applicant.ID,
			Status:         application.ApplicationStatusPending,
			CoverLetter:    req.CoverLetter,
			JobTitle:       jobEntity.Title,
			JobCategory:    jobEntity.Category,
			ApplicantName:  applicant.FullName(),
			ApplicantEmail: applicant.Email,
			SubmittedAt:    s.clock(),
		}
		if err := s.appRepo.Create(ctx, newApp); err != nil {
			if errx.IsCode(err, application.CodeAlreadyApplied) {
				return err
			}
			return errx.Wrap(err, "failed to create application", errx.TypeInternal)
		}
		if err := s.jobRepo.AdjustApplicationCount(ctx, jobEntity.ID, 1); err != nil {
			if delErr := s.appRepo.Delete(ctx, newApp.ID); delErr != nil {
				logx.Error("failed to roll back application", "application_id", newApp.ID, "err", delErr)
			}
			return errx.Wrap(err, "failed to update job application count", errx.TypeInternal)
		}
		created = newApp
		return nil
	})
	if err != nil {
		return nil, err
	}

	logx.Info("application submitted", "application_id", created.ID, "job_id", created.JobID, "applicant_id", created.ApplicantID)
	return created, nil
}

// Withdraw removes the applicant's own undecided application and decrements
// the job's application count
func (s *ApplicationService) Withdraw(ctx context.Context, id kernel.ApplicationID, applicantID kernel.UserID) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !app.BelongsTo(applicantID) {
		return application.ErrNotOwner().WithDetail("application_id", id.String())
	}
	if err := app.CanWithdraw(); err != nil {
		return err
	}

	return s.simulator.Run(ctx, actionKey(id), func(ctx context.Context) error {
		if err := s.appRepo.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.jobRepo.AdjustApplicationCount(ctx, app.JobID, -1); err != nil {
			if errx.IsCode(err, job.CodeJobNotFound) {
				return nil
			}
			return errx.Wrap(err, "failed to update job application count", errx.TypeInternal)
		}
		return nil
	})
}

// ============================================================================
// Queries
// ============================================================================

// ListApplications filters every application then slices the requested page
func (s *ApplicationService) ListApplications(ctx context.Context, req application.ListApplicationsRequest) (*application.PaginatedApplicationsResponse, error) {
	all, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return paginate(all, req), nil
}

// ListMine lists the applicant's own applications
func (s *ApplicationService) ListMine(ctx context.Context, applicantID kernel.UserID, req application.ListApplicationsRequest) (*application.PaginatedApplicationsResponse, error) {
	all, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	mine := listx.Filter(all, application.Schema, listx.FilterState{}.WithField(application.FieldApplicantID, applicantID.String()))
	return paginate(mine, req), nil
}

// GetApplication returns an application to its applicant, or to a reviewer
func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID, viewer kernel.UserID, canReadAll bool) (*application.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canReadAll && !app.BelongsTo(viewer) {
		return nil, application.ErrNotOwner().WithDetail("application_id", id.String())
	}
	resp := app.ToResponse()
	return &resp, nil
}

// Facets returns the distinct filter values present in the collection
func (s *ApplicationService) Facets(ctx context.Context) (map[string][]string, error) {
	all, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return listx.Facets(all, application.Schema), nil
}

func paginate(apps []application.Application, req application.ListApplicationsRequest) *application.PaginatedApplicationsResponse {
	filtered := listx.Filter(apps, application.Schema, req.Filters)
	page := kernel.Paginate(filtered, req.Pagination.Normalize(DefaultPageSize))
	return &application.PaginatedApplicationsResponse{
		Paginated: kernel.MapPaginated(page, application.Application.ToResponse),
		Filters:   req.Filters,
		Query:     listx.Encode(req.Filters),
	}
}

// ============================================================================
// Review
// ============================================================================

// UpdateStatus moves an application through the pipeline behind the action
// simulator. The application is untouched when the simulated action fails.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	target, err := s.machine.Parse(string(req.Status))
	if err != nil {
		s.metrics.Transition("application", metrics.UnknownStatus, err)
		return nil, err
	}

	current, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.machine.Check(current.Status, target); err != nil {
		s.metrics.Transition("application", string(target), err)
		return nil, err
	}

	var updated *application.Application
	err = s.simulator.Run(ctx, actionKey(id), func(ctx context.Context) error {
		latest, err := s.appRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.machine.Check(latest.Status, target); err != nil {
			return err
		}
		latest.SetStatus(target, req.Note, s.clock())
		if err := s.appRepo.Update(ctx, id, latest); err != nil {
			return errx.Wrap(err, "failed to update application status", errx.TypeInternal)
		}
		updated = latest
		return nil
	})
	s.metrics.Transition("application", string(target), err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// BulkUpdateStatus applies one status change to many applications. Each
// application succeeds or fails on its own.
func (s *ApplicationService) BulkUpdateStatus(ctx context.Context, req application.BulkUpdateStatusRequest) (*application.BulkApplicationOperationResponse, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	errs := make([]error, len(req.ApplicationIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, appID := range req.ApplicationIDs {
		g.Go(func() error {
			_, errs[i] = s.UpdateStatus(gctx, appID, application.UpdateStatusRequest{Status: req.Status, Note: req.Note})
			return nil
		})
	}
	_ = g.Wait()

	result := &application.BulkApplicationOperationResponse{
		Successful: []kernel.ApplicationID{},
		Failed:     make(map[kernel.ApplicationID]string),
		Total:      len(req.ApplicationIDs),
	}
	for i, appID := range req.ApplicationIDs {
		if errs[i] != nil {
			result.Failed[appID] = errs[i].Error()
		} else {
			result.Successful = append(result.Successful, appID)
		}
	}
	return result, nil
}

// IsBusy reports whether a status change for the application is in flight
func (s *ApplicationService) IsBusy(id kernel.ApplicationID) bool {
	return s.simulator.Busy(actionKey(id))
}

// ============================================================================
// Export
// ============================================================================

// ExportCSV renders every application matching filters and archives the file
func (s *ApplicationService) ExportCSV(ctx context.Context, filters listx.FilterState) (*exportx.Export, error) {
	all, err := s.appRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	data, err := exportx.EncodeCSV(csvColumns, listx.Filter(all, application.Schema, filters))
	if err != nil {
		return nil, err
	}
	exp, err := s.archive.Store(ctx, "applications", data)
	if err != nil {
		return nil, errx.Wrap(err, "failed to archive export", errx.TypeInternal)
	}
	s.metrics.Export("applications")
	return exp, nil
}

var csvColumns = []exportx.Column[application.Application]{
	{Header: "id", Value: func(a application.Application) string { return a.ID.String() }},
	{Header: "job_id", Value: func(a application.Application) string { return a.JobID.String() }},
	{Header: "job_title", Value: func(a application.Application) string { return string(a.JobTitle) }},
	{Header: "category", Value: func(a application.Application) string { return string(a.JobCategory) }},
	{Header: "applicant", Value: func(a application.Application) string { return a.ApplicantName }},
	{Header: "email", Value: func(a application.Application) string { return string(a.ApplicantEmail) }},
	{Header: "status", Value: func(a application.Application) string { return string(a.Status) }},
	{Header: "submitted_at", Value: func(a application.Application) string { return a.SubmittedAt.UTC().Format(time.RFC3339) }},
	{Header: "note", Value: func(a application.Application) string {
		if a.Note == nil {
			return ""
		}
		return *a.Note
	}},
}

func actionKey(id kernel.ApplicationID) string {
	return "application:" + id.String()
}
