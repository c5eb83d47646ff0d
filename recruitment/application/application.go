package application

import (
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

// ApplicationStatus represents where an application is in the hiring pipeline
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"     // Submitted, not yet reviewed
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted" // Passed initial review
	ApplicationStatusInterview   ApplicationStatus = "interview"   // Interview scheduled
	ApplicationStatusApproved    ApplicationStatus = "approved"    // Offer made
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// Application is one applicant's candidacy for one job. Job title, category
// and applicant identity are copied at submission so lists can be searched
// without joins.
type Application struct {
	ID             kernel.ApplicationID `db:"id" json:"id"`
	JobID          kernel.JobID         `db:"job_id" json:"job_id" validate:"required"`
	ApplicantID    kernel.UserID        `db:"applicant_id" json:"applicant_id" validate:"required"`
	Status         ApplicationStatus    `db:"status" json:"status" validate:"required"`
	Note           *string              `db:"note" json:"note,omitempty"`
	CoverLetter    string               `db:"cover_letter" json:"cover_letter,omitempty" validate:"max=4000"`
	JobTitle       kernel.JobTitle      `db:"job_title" json:"job_title"`
	JobCategory    kernel.JobCategory   `db:"job_category" json:"job_category"`
	ApplicantName  string               `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail kernel.Email         `db:"applicant_email" json:"applicant_email"`
	SubmittedAt    time.Time            `db:"submitted_at" json:"submitted_at"`
	UpdatedAt      *time.Time           `db:"updated_at" json:"updated_at,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPending checks if the application awaits a first review
func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// IsDecided checks if the application reached a final outcome
func (a *Application) IsDecided() bool {
	return a.Status == ApplicationStatusApproved || a.Status == ApplicationStatusRejected
}

// BelongsTo checks if userID submitted the application
func (a *Application) BelongsTo(userID kernel.UserID) bool {
	return a.ApplicantID == userID
}

// CanWithdraw checks if the applicant may still take the application back
func (a *Application) CanWithdraw() error {
	if a.IsDecided() {
		return ErrCannotWithdraw().
			WithDetail("application_id", a.ID.String()).
			WithDetail("status", a.Status)
	}
	return nil
}

// SetStatus moves the application to status. The note is replaced only when given.
func (a *Application) SetStatus(status ApplicationStatus, note *string, now time.Time) {
	a.Status = status
	if note != nil {
		n := *note
		a.Note = &n
	}
	a.UpdatedAt = &now
}

// LastActivity is the latest of submission and last update
func (a *Application) LastActivity() time.Time {
	if a.UpdatedAt != nil && a.UpdatedAt.After(a.SubmittedAt) {
		return *a.UpdatedAt
	}
	return a.SubmittedAt
}
