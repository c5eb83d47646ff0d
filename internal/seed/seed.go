// Package seed builds the demo data the board starts with and loads it into
// the repositories
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/logx"
	"github.com/Abraxas-365/shiftboard/pkg/validatex"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// Fixtures is one consistent set of demo records
type Fixtures struct {
	Jobs         []job.Job
	Accounts     []account.UserAccount
	Applications []application.Application
}

// Passwords used for the seeded accounts
type Passwords struct {
	Admin   string
	Student string
}

type jobSpec struct {
	id       string
	title    string
	employer string
	location string
	category string
	kind     job.JobType
	salary   kernel.SalaryRange
	status   job.JobStatus
	days     int // deadline relative to now
}

var jobSpecs = []jobSpec{
	{"job-001", "Hotel Receptionist", "Grand Palace Hotel", "Barcelona", "front-desk", job.JobTypeFullTime, kernel.SalaryRange{Min: 1600, Max: 1900, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusActive, 30},
	{"job-002", "Commis Chef", "Le Petit Bistro", "Lyon", "kitchen", job.JobTypeFullTime, kernel.SalaryRange{Min: 1700, Max: 2000, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusActive, 21},
	{"job-003", "Cruise Ship Waiter", "Blue Horizon Cruises", "Genoa", "service", job.JobTypeSeasonal, kernel.SalaryRange{Min: 2100, Max: 2400, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusActive, 45},
	{"job-004", "Bartender", "Rooftop 360", "Madrid", "bar", job.JobTypePartTime, kernel.SalaryRange{Min: 12, Max: 15, Currency: "EUR", Period: kernel.SalaryPeriodHour}, job.JobStatusPaused, 14},
	{"job-005", "Event Coordinator Intern", "Alpine Resorts Group", "Zermatt", "events", job.JobTypeInternship, kernel.SalaryRange{}, job.JobStatusActive, 60},
	{"job-006", "Housekeeping Supervisor", "Seaside Suites", "Nice", "housekeeping", job.JobTypeFullTime, kernel.SalaryRange{Min: 28000, Max: 32000, Currency: "EUR", Period: kernel.SalaryPeriodYear}, job.JobStatusClosed, -5},
	{"job-007", "Barista", "Cafe Centrale", "Milan", "bar", job.JobTypePartTime, kernel.SalaryRange{Min: 10, Max: 12, Currency: "EUR", Period: kernel.SalaryPeriodHour}, job.JobStatusActive, 10},
	{"job-008", "Night Auditor", "City Central Inn", "Lisbon", "front-desk", job.JobTypeContract, kernel.SalaryRange{Min: 1500, Max: 1700, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusDraft, 40},
	{"job-009", "Ski Lodge Host", "Alpine Resorts Group", "Chamonix", "service", job.JobTypeSeasonal, kernel.SalaryRange{Min: 1800, Max: 2100, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusActive, 25},
	{"job-010", "Sommelier", "Le Petit Bistro", "Paris", "service", job.JobTypeFullTime, kernel.SalaryRange{Min: 2400, Max: 2900, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusActive, 35},
	{"job-011", "Pool Lifeguard", "Seaside Suites", "Faro", "leisure", job.JobTypeSeasonal, kernel.SalaryRange{Min: 1300, Max: 1500, Currency: "EUR", Period: kernel.SalaryPeriodMonth}, job.JobStatusActive, 18},
	{"job-012", "Pastry Assistant", "Grand Palace Hotel", "Barcelona", "kitchen", job.JobTypeInternship, kernel.SalaryRange{}, job.JobStatusActive, 50},
}

type accountSpec struct {
	id       string
	first    string
	last     string
	email    string
	phone    string
	location string
	skills   []string
	resume   string
	role     auth.Role
}

var accountSpecs = []accountSpec{
	{"user-admin", "Board", "Admin", "admin@shiftboard.io", "+34 600 000 000", "Barcelona", nil, "", auth.RoleAdmin},
	{"user-001", "Iris", "Novak", "iris.novak@example.com", "+385 91 111 2222", "Zagreb", []string{"front office", "english", "opera pms"}, "https://files.example.com/resumes/iris-novak.pdf", auth.RoleStudent},
	{"user-002", "Omar", "Haddad", "omar.haddad@example.com", "+33 6 12 34 56 78", "Lyon", []string{"french cuisine", "haccp"}, "", auth.RoleStudent},
	{"user-003", "Lucia", "Ferrari", "lucia.ferrari@example.com", "", "Milan", []string{"latte art"}, "https://files.example.com/resumes/lucia-ferrari.pdf", auth.RoleStudent},
	{"user-004", "Tom", "Becker", "tom.becker@example.com", "", "", nil, "", auth.RoleStudent},
}

type applicationSpec struct {
	id        string
	jobID     string
	applicant string
	status    application.ApplicationStatus
	note      string
	hoursAgo  int
}

var applicationSpecs = []applicationSpec{
	{"app-001", "job-001", "user-001", application.ApplicationStatusInterview, "Strong front office background", 120},
	{"app-002", "job-003", "user-001", application.ApplicationStatusPending, "", 30},
	{"app-003", "job-002", "user-002", application.ApplicationStatusShortlisted, "Trial shift next week", 96},
	{"app-004", "job-010", "user-002", application.ApplicationStatusRejected, "Needs WSET level 2", 200},
	{"app-005", "job-007", "user-003", application.ApplicationStatusApproved, "Start on Monday", 150},
	{"app-006", "job-011", "user-003", application.ApplicationStatusPending, "", 12},
	{"app-007", "job-009", "user-004", application.ApplicationStatusPending, "", 6},
}

// Build assembles the fixtures relative to now and validates every record
func Build(now time.Time, passwords Passwords) (*Fixtures, error) {
	adminHash, err := auth.HashPassword(passwords.Admin)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	studentHash, err := auth.HashPassword(passwords.Student)
	if err != nil {
		return nil, fmt.Errorf("hash student password: %w", err)
	}

	f := &Fixtures{}
	jobsByID := make(map[kernel.JobID]*job.Job, len(jobSpecs))
	for _, s := range jobSpecs {
		created := now.AddDate(0, 0, -20)
		f.Jobs = append(f.Jobs, job.Job{
			ID:          kernel.NewJobID(s.id),
			Title:       kernel.JobTitle(s.title),
			Employer:    kernel.EmployerName(s.employer),
			Location:    kernel.Location(s.location),
			Category:    kernel.JobCategory(s.category),
			Type:        s.kind,
			Salary:      s.salary,
			Description: kernel.JobDescription(fmt.Sprintf("%s at %s in %s.", s.title, s.employer, s.location)),
			Deadline:    now.AddDate(0, 0, s.days),
			Status:      s.status,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	for i := range f.Jobs {
		jobsByID[f.Jobs[i].ID] = &f.Jobs[i]
	}

	accountsByID := make(map[kernel.UserID]*account.UserAccount, len(accountSpecs))
	for _, s := range accountSpecs {
		hash := studentHash
		if s.role == auth.RoleAdmin {
			hash = adminHash
		}
		created := now.AddDate(0, -2, 0)
		f.Accounts = append(f.Accounts, account.UserAccount{
			ID:           kernel.NewUserID(s.id),
			FirstName:    kernel.FirstName(s.first),
			LastName:     kernel.LastName(s.last),
			Email:        kernel.Email(s.email),
			Phone:        kernel.Phone(s.phone),
			Location:     kernel.Location(s.location),
			Skills:       s.skills,
			ResumeURL:    s.resume,
			PasswordHash: hash,
			Role:         s.role,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}
	for i := range f.Accounts {
		accountsByID[f.Accounts[i].ID] = &f.Accounts[i]
	}

	for _, s := range applicationSpecs {
		j, ok := jobsByID[kernel.NewJobID(s.jobID)]
		if !ok {
			return nil, fmt.Errorf("application %s: unknown job %s", s.id, s.jobID)
		}
		applicant, ok := accountsByID[kernel.NewUserID(s.applicant)]
		if !ok {
			return nil, fmt.Errorf("application %s: unknown applicant %s", s.id, s.applicant)
		}
		submitted := now.Add(-time.Duration(s.hoursAgo) * time.Hour)
		app := application.Application{
			ID:             kernel.NewApplicationID(s.id),
			JobID:          j.ID,
			ApplicantID:    applicant.ID,
			Status:         s.status,
			JobTitle:       j.Title,
			JobCategory:    j.Category,
			ApplicantName:  applicant.FullName(),
			ApplicantEmail: applicant.Email,
			SubmittedAt:    submitted,
		}
		if s.note != "" {
			note := s.note
			app.Note = &note
		}
		if !app.IsPending() {
			reviewed := submitted.Add(24 * time.Hour)
			app.UpdatedAt = &reviewed
		}
		j.ApplicationCount++
		f.Applications = append(f.Applications, app)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate runs the struct rules on every record
func (f *Fixtures) Validate() error {
	for _, j := range f.Jobs {
		if err := validatex.Struct(j); err != nil {
			return fmt.Errorf("job %s: %w", j.ID, err)
		}
	}
	for _, a := range f.Accounts {
		if err := validatex.Struct(a); err != nil {
			return fmt.Errorf("account %s: %w", a.ID, err)
		}
	}
	for _, a := range f.Applications {
		if err := validatex.Struct(a); err != nil {
			return fmt.Errorf("application %s: %w", a.ID, err)
		}
	}
	return nil
}

// Repositories are the stores Load writes into
type Repositories struct {
	Jobs         job.Repository
	Accounts     account.Repository
	Applications application.Repository
}

// Load inserts the fixtures. Collections that already hold records are left
// alone so a persistent database is only seeded once.
func Load(ctx context.Context, f *Fixtures, repos Repositories) error {
	existing, err := repos.Jobs.List(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	if len(existing) == 0 {
		for i := range f.Jobs {
			if err := repos.Jobs.Create(ctx, &f.Jobs[i]); err != nil {
				return fmt.Errorf("seed job %s: %w", f.Jobs[i].ID, err)
			}
		}
	}

	accounts, err := repos.Accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		for i := range f.Accounts {
			if err := repos.Accounts.Create(ctx, &f.Accounts[i]); err != nil {
				return fmt.Errorf("seed account %s: %w", f.Accounts[i].ID, err)
			}
		}
	}

	applications, err := repos.Applications.List(ctx)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}
	if len(applications) == 0 && len(existing) == 0 {
		for i := range f.Applications {
			if err := repos.Applications.Create(ctx, &f.Applications[i]); err != nil {
				return fmt.Errorf("seed application %s: %w", f.Applications[i].ID, err)
			}
		}
	}

	logx.Info("seed data loaded",
		"jobs", len(f.Jobs),
		"accounts", len(f.Accounts),
		"applications", len(f.Applications),
	)
	return nil
}
