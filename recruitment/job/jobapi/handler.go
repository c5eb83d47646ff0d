package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/job"
	"github.com/Abraxas-365/shiftboard/recruitment/job/jobsrv"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListJobs returns one page of the filtered job list
// GET /api/jobs?search=&status=&category=&type=&employer=&location=&page=&page_size=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	req := job.ListJobsRequest{
		Filters:    fiberx.ParseFilter(c, job.Schema.FieldNames()),
		Pagination: fiberx.ParsePagination(c, jobsrv.DefaultPageSize),
	}

	jobs, err := h.service.ListJobs(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// Facets returns the values available to each job filter
// GET /api/jobs/facets
func (h *Handlers) Facets(c *fiber.Ctx) error {
	facets, err := h.service.Facets(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(facets)
}

// GetJob retrieves a job by ID
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	jobResp, err := h.service.GetJob(c.Context(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(jobResp)
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	newJob, err := h.service.CreateJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob.ToResponse())
}

// UpdateJob updates an existing job
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	updatedJob, err := h.service.UpdateJob(c.Context(), kernel.JobID(c.Params("id")), req)
	if err != nil {
		return err
	}

	return c.JSON(updatedJob.ToResponse())
}

// ChangeStatus moves a job to another status
// PATCH /api/jobs/:id/status
func (h *Handlers) ChangeStatus(c *fiber.Ctx) error {
	var req job.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	updatedJob, err := h.service.ChangeStatus(c.Context(), kernel.JobID(c.Params("id")), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(updatedJob.ToResponse())
}

// DeleteJob deletes a job
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	if err := h.service.DeleteJob(c.Context(), kernel.JobID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV downloads the filtered job list as CSV
// GET /api/jobs/export
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	exp, err := h.service.ExportCSV(c.Context(), fiberx.ParseFilter(c, job.Schema.FieldNames()))
	if err != nil {
		return err
	}
	c.Attachment(exp.FileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(exp.Data)
}

// ============================================================================
// Routes
// ============================================================================

// RegisterRoutes registers all job routes. Reads are public, writes need jobs scopes.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/jobs")

	api.Get("/", handlers.ListJobs)
	api.Get("/facets", handlers.Facets)

	api.Get("/export",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsExport),
		handlers.ExportCSV,
	)

	api.Get("/:id", handlers.GetJob)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.UpdateJob,
	)

	api.Patch("/:id/status",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsStatus),
		handlers.ChangeStatus,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsDelete),
		handlers.DeleteJob,
	)
}
