package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/shiftboard/internal/database"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
)

// SQLApplicationRepository implements application.Repository on postgres, pgx or sqlite
type SQLApplicationRepository struct {
	db *sqlx.DB
}

var _ application.Repository = (*SQLApplicationRepository)(nil)

// NewSQLApplicationRepository creates a new SQL application repository
func NewSQLApplicationRepository(db *sqlx.DB) *SQLApplicationRepository {
	return &SQLApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID             string         `db:"id"`
	JobID          string         `db:"job_id"`
	ApplicantID    string         `db:"applicant_id"`
	Status         string         `db:"status"`
	Note           sql.NullString `db:"note"`
	CoverLetter    string         `db:"cover_letter"`
	JobTitle       string         `db:"job_title"`
	JobCategory    string         `db:"job_category"`
	ApplicantName  string         `db:"applicant_name"`
	ApplicantEmail string         `db:"applicant_email"`
	SubmittedAt    time.Time      `db:"submitted_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() application.Application {
	a := application.Application{
		ID:             kernel.ApplicationID(m.ID),
		JobID:          kernel.JobID(m.JobID),
		ApplicantID:    kernel.UserID(m.ApplicantID),
		Status:         application.ApplicationStatus(m.Status),
		CoverLetter:    m.CoverLetter,
		JobTitle:       kernel.JobTitle(m.JobTitle),
		JobCategory:    kernel.JobCategory(m.JobCategory),
		ApplicantName:  m.ApplicantName,
		ApplicantEmail: kernel.Email(m.ApplicantEmail),
		SubmittedAt:    m.SubmittedAt,
	}
	if m.Note.Valid {
		note := m.Note.String
		a.Note = &note
	}
	if m.UpdatedAt.Valid {
		updated := m.UpdatedAt.Time
		a.UpdatedAt = &updated
	}
	return a
}

// fromEntity converts domain entity to database model
func fromEntity(a *application.Application) *applicationModel {
	m := &applicationModel{
		ID:             a.ID.String(),
		JobID:          a.JobID.String(),
		ApplicantID:    a.ApplicantID.String(),
		Status:         string(a.Status),
		CoverLetter:    a.CoverLetter,
		JobTitle:       string(a.JobTitle),
		JobCategory:    string(a.JobCategory),
		ApplicantName:  a.ApplicantName,
		ApplicantEmail: string(a.ApplicantEmail),
		SubmittedAt:    a.SubmittedAt.UTC(),
	}
	if a.Note != nil {
		m.Note = sql.NullString{String: *a.Note, Valid: true}
	}
	if a.UpdatedAt != nil {
		m.UpdatedAt = sql.NullTime{Time: a.UpdatedAt.UTC(), Valid: true}
	}
	return m
}

const applicationColumns = `id, job_id, applicant_id, status, note, cover_letter,
	job_title, job_category, applicant_name, applicant_email, submitted_at, updated_at`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *SQLApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `) VALUES (
			:id, :job_id, :applicant_id, :status, :note, :cover_letter,
			:job_title, :job_category, :applicant_name, :applicant_email, :submitted_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(a)); err != nil {
		if database.IsUniqueViolation(err) {
			return application.ErrAlreadyApplied().
				WithDetail("job_id", a.JobID.String()).
				WithDetail("applicant_id", a.ApplicantID.String())
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// Update updates the mutable fields of an application
func (r *SQLApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
	model := fromEntity(a)
	model.ID = id.String()

	query := `
		UPDATE applications SET
			status = :status, note = :note, cover_letter = :cover_letter,
			job_title = :job_title, job_category = :job_category,
			applicant_name = :applicant_name, applicant_email = :applicant_email,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return requireOneRow(result, id)
}

// GetByID retrieves an application by ID
func (r *SQLApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var model applicationModel
	query := r.db.Rebind(`SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`)
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	a := model.toEntity()
	return &a, nil
}

// Delete deletes an application by ID
func (r *SQLApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM applications WHERE id = ?`), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return requireOneRow(result, id)
}

// List returns every application, oldest first
func (r *SQLApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	var models []applicationModel
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY submitted_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	apps := make([]application.Application, 0, len(models))
	for i := range models {
		apps = append(apps, models[i].toEntity())
	}
	return apps, nil
}

// ExistsByJobAndApplicant checks if the applicant already applied to the job
func (r *SQLApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID kernel.JobID, applicantID kernel.UserID) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM applications WHERE job_id = ? AND applicant_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, jobID.String(), applicantID.String()); err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return count > 0, nil
}

func requireOneRow(result sql.Result, id kernel.ApplicationID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return nil
}
