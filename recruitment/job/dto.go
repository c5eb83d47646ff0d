package job

import (
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/pkg/listx"
	"github.com/Abraxas-365/shiftboard/pkg/statusx"
)

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title       kernel.JobTitle       `json:"title" validate:"required,max=120"`
	Employer    kernel.EmployerName   `json:"employer" validate:"required"`
	Location    kernel.Location       `json:"location" validate:"required"`
	Category    kernel.JobCategory    `json:"category" validate:"required"`
	Type        JobType               `json:"type" validate:"required,oneof=full_time part_time seasonal internship contract"`
	Salary      kernel.SalaryRange    `json:"salary"`
	Description kernel.JobDescription `json:"description"`
	Deadline    time.Time             `json:"deadline" validate:"required"`
}

// UpdateJobRequest - DTO for updating an existing job
type UpdateJobRequest struct {
	Title       *kernel.JobTitle       `json:"title,omitempty" validate:"omitempty,max=120"`
	Employer    *kernel.EmployerName   `json:"employer,omitempty"`
	Location    *kernel.Location       `json:"location,omitempty"`
	Category    *kernel.JobCategory    `json:"category,omitempty"`
	Type        *JobType               `json:"type,omitempty" validate:"omitempty,oneof=full_time part_time seasonal internship contract"`
	Salary      *kernel.SalaryRange    `json:"salary,omitempty"`
	Description *kernel.JobDescription `json:"description,omitempty"`
	Deadline    *time.Time             `json:"deadline,omitempty"`
}

// ChangeStatusRequest - DTO for moving a job to another status
type ChangeStatusRequest struct {
	Status JobStatus `json:"status" validate:"required"`
}

// ListJobsRequest - filter and page of a job list view
type ListJobsRequest struct {
	Filters    listx.FilterState
	Pagination kernel.PaginationOptions
}

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID               kernel.JobID          `json:"id"`
	Title            kernel.JobTitle       `json:"title"`
	Employer         kernel.EmployerName   `json:"employer"`
	Location         kernel.Location       `json:"location"`
	Category         kernel.JobCategory    `json:"category"`
	Type             JobType               `json:"type"`
	Salary           kernel.SalaryRange    `json:"salary"`
	SalaryLabel      string                `json:"salary_label,omitempty"`
	Description      kernel.JobDescription `json:"description,omitempty"`
	Deadline         time.Time             `json:"deadline"`
	Status           JobStatus             `json:"status"`
	Display          statusx.Style         `json:"display"`
	ApplicationCount int                   `json:"application_count"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ToResponse converts the entity to its API shape
func (j Job) ToResponse() JobResponse {
	resp := JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Employer:         j.Employer,
		Location:         j.Location,
		Category:         j.Category,
		Type:             j.Type,
		Salary:           j.Salary,
		Description:      j.Description,
		Deadline:         j.Deadline,
		Status:           j.Status,
		Display:          Palette.Style(j.Status),
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
	if !j.Salary.IsZero() {
		resp.SalaryLabel = j.Salary.String()
	}
	return resp
}

// PaginatedJobsResponse is one page of a filtered job list. Query is the
// canonical URL query reproducing the view.
type PaginatedJobsResponse struct {
	kernel.Paginated[JobResponse]
	Filters listx.FilterState `json:"filters"`
	Query   string            `json:"query"`
}

// FacetsResponse - distinct values per filter field
type FacetsResponse struct {
	Facets   map[string][]string `json:"facets"`
	Statuses []JobStatus         `json:"statuses"`
	Types    []JobType           `json:"types"`
}
