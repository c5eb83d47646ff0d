package dashboardsrv

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// DashboardService builds the admin overview from the three stores
type DashboardService struct {
	jobRepo         job.Repository
	applicationRepo application.Repository
	accountRepo     account.Repository
}

// NewDashboardService creates a new instance of the dashboard service
func NewDashboardService(
	jobRepo job.Repository,
	applicationRepo application.Repository,
	accountRepo account.Repository,
) *DashboardService {
	return &DashboardService{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		accountRepo:     accountRepo,
	}
}

// Overview loads every collection and aggregates it
func (s *DashboardService) Overview(ctx context.Context) (*dashboard.Overview, error) {
	var (
		jobs         []job.Job
		applications []application.Application
		accounts     []account.UserAccount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		applications, err = s.applicationRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accountRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errx.Wrap(err, "failed to load dashboard", errx.TypeInternal)
	}

	jobStatuses := make([]job.JobStatus, len(jobs))
	for i, j := range jobs {
		jobStatuses[i] = j.Status
	}
	appStatuses := make([]application.ApplicationStatus, len(applications))
	for i, a := range applications {
		appStatuses[i] = a.Status
	}
	roles := make([]auth.Role, len(accounts))
	for i, acc := range accounts {
		roles[i] = acc.Role
	}

	return &dashboard.Overview{
		TotalJobs:            len(jobs),
		TotalApplications:    len(applications),
		TotalUsers:           len(accounts),
		JobsByStatus:         dashboard.WithPalette(dashboard.Tally(job.Statuses, jobStatuses), job.Palette),
		ApplicationsByStatus: dashboard.WithPalette(dashboard.Tally(application.Statuses, appStatuses), application.Palette),
		UsersByRole:          dashboard.Tally([]auth.Role{auth.RoleStudent, auth.RoleAdmin}, roles),
		RecentApplications:   recent(applications, dashboard.RecentLimit),
	}, nil
}

// recent returns the n applications with the latest activity, newest first.
// Ties keep submission order.
func recent(applications []application.Application, n int) []application.ApplicationResponse {
	sorted := slices.Clone(applications)
	slices.SortStableFunc(sorted, func(a, b application.Application) int {
		return b.LastActivity().Compare(a.LastActivity())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]application.ApplicationResponse, len(sorted))
	for i, a := range sorted {
		out[i] = a.ToResponse()
	}
	return out
}
