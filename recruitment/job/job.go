package job

import (
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusActive JobStatus = "active" // Published and accepting applications
	JobStatusDraft  JobStatus = "draft"  // Created but not published
	JobStatusClosed JobStatus = "closed" // No longer accepting applications
	JobStatusPaused JobStatus = "paused" // Temporarily hidden from applicants
)

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeSeasonal   JobType = "seasonal"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeSeasonal, JobTypeInternship, JobTypeContract}

type Job struct {
	ID               kernel.JobID          `db:"id" json:"id" validate:"required"`
	Title            kernel.JobTitle       `db:"title" json:"title" validate:"required,max=120"`
	Employer         kernel.EmployerName   `db:"employer" json:"employer" validate:"required"`
	Location         kernel.Location       `db:"location" json:"location" validate:"required"`
	Category         kernel.JobCategory    `db:"category" json:"category" validate:"required"`
	Type             JobType               `db:"type" json:"type" validate:"required,oneof=full_time part_time seasonal internship contract"`
	Salary           kernel.SalaryRange    `json:"salary"`
	Description      kernel.JobDescription `db:"description" json:"description"`
	Deadline         time.Time             `db:"deadline" json:"deadline" validate:"required"`
	Status           JobStatus             `db:"status" json:"status" validate:"required,oneof=active draft closed paused"`
	ApplicationCount int                   `db:"application_count" json:"application_count" validate:"min=0"`
	CreatedAt        time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time             `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the job is currently published
func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}

// IsDraft checks if the job is in draft status
func (j *Job) IsDraft() bool {
	return j.Status == JobStatusDraft
}

// IsClosed checks if the job is closed
func (j *Job) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// IsExpired reports whether the deadline has passed at now
func (j *Job) IsExpired(now time.Time) bool {
	return !j.Deadline.IsZero() && now.After(j.Deadline)
}

// AcceptsApplications checks if a candidate can apply at now
func (j *Job) AcceptsApplications(now time.Time) error {
	if !j.IsActive() {
		return ErrJobNotAccepting().WithDetail("status", j.Status)
	}
	if j.IsExpired(now) {
		return ErrDeadlinePassed().WithDetail("deadline", j.Deadline)
	}
	return nil
}

// HasApplications reports whether anyone applied
func (j *Job) HasApplications() bool {
	return j.ApplicationCount > 0
}

// SetStatus replaces the status. Transition rules are checked by the caller.
func (j *Job) SetStatus(status JobStatus, now time.Time) {
	j.Status = status
	j.UpdatedAt = now
}

// AdjustApplications changes the application count, never below zero
func (j *Job) AdjustApplications(delta int, now time.Time) {
	j.ApplicationCount = max(0, j.ApplicationCount+delta)
	j.UpdatedAt = now
}

// UpdateDetails applies the non-nil fields of req
func (j *Job) UpdateDetails(req UpdateJobRequest, now time.Time) bool {
	updated := false
	if req.Title != nil && *req.Title != j.Title {
		j.Title = *req.Title
		updated = true
	}
	if req.Employer != nil && *req.Employer != j.Employer {
		j.Employer = *req.Employer
		updated = true
	}
	if req.Location != nil && *req.Location != j.Location {
		j.Location = *req.Location
		updated = true
	}
	if req.Category != nil && *req.Category != j.Category {
		j.Category = *req.Category
		updated = true
	}
	if req.Type != nil && *req.Type != j.Type {
		j.Type = *req.Type
		updated = true
	}
	if req.Salary != nil && *req.Salary != j.Salary {
		j.Salary = *req.Salary
		updated = true
	}
	if req.Description != nil && *req.Description != j.Description {
		j.Description = *req.Description
		updated = true
	}
	if req.Deadline != nil && !req.Deadline.Equal(j.Deadline) {
		j.Deadline = *req.Deadline
		updated = true
	}
	if updated {
		j.UpdatedAt = now
	}
	return updated
}
