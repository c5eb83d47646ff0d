package application

import (
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
)

// ApplyRequest - DTO for applying to a job
type ApplyRequest struct {
	JobID       kernel.JobID `json:"job_id" validate:"required"`
	CoverLetter string       `json:"cover_letter,omitempty" validate:"max=4000"`
}

// UpdateStatusRequest - DTO for moving an application through the pipeline
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
	Note   *string           `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// BulkUpdateStatusRequest - Request to update status for multiple applications
type BulkUpdateStatusRequest struct {
	ApplicationIDs []kernel.ApplicationID `json:"application_ids" validate:"required,min=1,max=100,dive,required"`
	Status         ApplicationStatus      `json:"status" validate:"required"`
	Note           *string                `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// BulkApplicationOperationResponse - Result of bulk operations
type BulkApplicationOperationResponse struct {
	Successful []kernel.ApplicationID          `json:"successful"`
	Failed     map[kernel.ApplicationID]string `json:"failed"`
	Total      int                             `json:"total"`
}

// ListApplicationsRequest - filter and page of an application list view
type ListApplicationsRequest struct {
	Filters    listx.FilterState
	Pagination kernel.PaginationOptions
}

// ApplicationResponse - DTO for returning application data
type ApplicationResponse struct {
	ID             kernel.ApplicationID `json:"id"`
	JobID          kernel.JobID         `json:"job_id"`
	JobTitle       kernel.JobTitle      `json:"job_title"`
	JobCategory    kernel.JobCategory   `json:"job_category"`
	ApplicantID    kernel.UserID        `json:"applicant_id"`
	ApplicantName  string               `json:"applicant_name"`
	ApplicantEmail kernel.Email         `json:"applicant_email"`
	Status         ApplicationStatus    `json:"status"`
	Display        statusx.Style        `json:"display"`
	Note           *string              `json:"note,omitempty"`
	CoverLetter    string               `json:"cover_letter,omitempty"`
	SubmittedAt    time.Time            `json:"submitted_at"`
	UpdatedAt      *time.Time           `json:"updated_at,omitempty"`
}

// ToResponse converts the entity to its API shape
func (a Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		JobTitle:       a.JobTitle,
		JobCategory:    a.JobCategory,
		ApplicantID:    a.ApplicantID,
		ApplicantName:  a.ApplicantName,
		ApplicantEmail: a.ApplicantEmail,
		Status:         a.Status,
		Display:        Palette.Style(a.Status),
		Note:           a.Note,
		CoverLetter:    a.CoverLetter,
		SubmittedAt:    a.SubmittedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// PaginatedApplicationsResponse is one page of a filtered application list
type PaginatedApplicationsResponse struct {
	kernel.Paginated[ApplicationResponse]
	Filters listx.FilterState `json:"filters"`
	Query   string            `json:"query"`
}
