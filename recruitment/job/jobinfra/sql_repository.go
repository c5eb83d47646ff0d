package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

// SQLJobRepository implements job.Repository on postgres, pgx or sqlite
type SQLJobRepository struct {
	db *sqlx.DB
}

var _ job.Repository = (*SQLJobRepository)(nil)

// NewSQLJobRepository creates a new SQL job repository
func NewSQLJobRepository(db *sqlx.DB) *SQLJobRepository {
	return &SQLJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID               string    `db:"id"`
	Title            string    `db:"title"`
	Employer         string    `db:"employer"`
	Location         string    `db:"location"`
	Category         string    `db:"category"`
	Type             string    `db:"type"`
	SalaryMin        int       `db:"salary_min"`
	SalaryMax        int       `db:"salary_max"`
	SalaryCurrency   string    `db:"salary_currency"`
	SalaryPeriod     string    `db:"salary_period"`
	Description      string    `db:"description"`
	Deadline         time.Time `db:"deadline"`
	Status           string    `db:"status"`
	ApplicationCount int       `db:"application_count"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() job.Job {
	return job.Job{
		ID:       kernel.JobID(m.ID),
		Title:    kernel.JobTitle(m.Title),
		Employer: kernel.EmployerName(m.Employer),
		Location: kernel.Location(m.Location),
		Category: kernel.JobCategory(m.Category),
		Type:     job.JobType(m.Type),
		Salary: kernel.SalaryRange{
			Min:      m.SalaryMin,
			Max:      m.SalaryMax,
			Currency: m.SalaryCurrency,
			Period:   kernel.SalaryPeriod(m.SalaryPeriod),
		},
		Description:      kernel.JobDescription(m.Description),
		Deadline:         m.Deadline,
		Status:           job.JobStatus(m.Status),
		ApplicationCount: m.ApplicationCount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:               j.ID.String(),
		Title:            string(j.Title),
		Employer:         string(j.Employer),
		Location:         string(j.Location),
		Category:         string(j.Category),
		Type:             string(j.Type),
		SalaryMin:        j.Salary.Min,
		SalaryMax:        j.Salary.Max,
		SalaryCurrency:   j.Salary.Currency,
		SalaryPeriod:     string(j.Salary.Period),
		Description:      string(j.Description),
		Deadline:         j.Deadline.UTC(),
		Status:           string(j.Status),
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt.UTC(),
		UpdatedAt:        j.UpdatedAt.UTC(),
	}
}

const jobColumns = `id, title, employer, location, category, type,
	salary_min, salary_max, salary_currency, salary_period,
	description, deadline, status, application_count, created_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *SQLJobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `) VALUES (
			:id, :title, :employer, :location, :category, :type,
			:salary_min, :salary_max, :salary_currency, :salary_period,
			:description, :deadline, :status, :application_count, :created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(j)); err != nil {
		if database.IsUniqueViolation(err) {
			return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID.String())
		}
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// Update updates an existing job
func (r *SQLJobRepository) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	model := fromEntity(j)
	model.ID = id.String()

	query := `
		UPDATE jobs SET
			title = :title, employer = :employer, location = :location,
			category = :category, type = :type,
			salary_min = :salary_min, salary_max = :salary_max,
			salary_currency = :salary_currency, salary_period = :salary_period,
			description = :description, deadline = :deadline, status = :status,
			application_count = :application_count, updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return requireOneRow(result, id)
}

// GetByID retrieves a job by ID
func (r *SQLJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var model jobModel
	query := r.db.Rebind(`SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`)
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	j := model.toEntity()
	return &j, nil
}

// Delete deletes a job by ID
func (r *SQLJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM jobs WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return requireOneRow(result, id)
}

// List returns every job, oldest first
func (r *SQLJobRepository) List(ctx context.Context) ([]job.Job, error) {
	var models []jobModel
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs := make([]job.Job, 0, len(models))
	for i := range models {
		jobs = append(jobs, models[i].toEntity())
	}
	return jobs, nil
}

// AdjustApplicationCount adds delta to the counter, never below zero
func (r *SQLJobRepository) AdjustApplicationCount(ctx context.Context, id kernel.JobID, delta int) error {
	query := r.db.Rebind(`
		UPDATE jobs SET
			application_count = CASE WHEN application_count + ? < 0 THEN 0 ELSE application_count + ? END,
			updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query, delta, delta, time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("failed to adjust application count: %w", err)
	}
	return requireOneRow(result, id)
}

func requireOneRow(result sql.Result, id kernel.JobID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}
