package applicationapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/application"
	"github.com/Abraxas-365/shiftboard/recruitment/application/applicationsrv"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits the caller's application to a job
// POST /api/applications
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	app, err := h.service.Apply(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app.ToResponse())
}

// ListApplications returns one page of the filtered application list
// GET /api/applications?search=&status=&job_id=&applicant_id=&category=&page=&page_size=
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	apps, err := h.service.ListApplications(c.Context(), listRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListMine returns the caller's own applications
// GET /api/applications/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	apps, err := h.service.ListMine(c.Context(), authContext.UserID, listRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// Facets returns the values available to each application filter
// GET /api/applications/facets
func (h *Handlers) Facets(c *fiber.Ctx) error {
	facets, err := h.service.Facets(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"facets": facets, "statuses": application.Statuses})
}

// GetApplication retrieves an application by ID
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	app, err := h.service.GetApplication(
		c.Context(),
		kernel.ApplicationID(c.Params("id")),
		authContext.UserID,
		authContext.HasScope(auth.ScopeApplicationsRead),
	)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// UpdateStatus moves an application through the pipeline
// PATCH /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	app, err := h.service.UpdateStatus(c.Context(), kernel.ApplicationID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(app.ToResponse())
}

// BulkUpdateStatus moves several applications to one status
// POST /api/applications/bulk/status
func (h *Handlers) BulkUpdateStatus(c *fiber.Ctx) error {
	var req application.BulkUpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	result, err := h.service.BulkUpdateStatus(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Withdraw deletes the caller's own application
// DELETE /api/applications/:id
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	if err := h.service.Withdraw(c.Context(), kernel.ApplicationID(c.Params("id")), authContext.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV downloads the filtered application list as CSV
// GET /api/applications/export
func (h *Handlers) ExportCSV(c *fiber.Ctx) error {
	exp, err := h.service.ExportCSV(c.Context(), fiberx.ParseFilter(c, application.Schema.FieldNames()))
	if err != nil {
		return err
	}
	c.Attachment(exp.FileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(exp.Data)
}

func listRequest(c *fiber.Ctx) application.ListApplicationsRequest {
	return application.ListApplicationsRequest{
		Filters:    fiberx.ParseFilter(c, application.Schema.FieldNames()),
		Pagination: fiberx.ParsePagination(c, applicationsrv.DefaultPageSize),
	}
}

// ============================================================================
// Routes
// ============================================================================

// RegisterRoutes registers all application routes. Every route needs a token.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	api.Post("/",
		authMiddleware.RequireScope(auth.ScopeApplicationsApply),
		handlers.Apply,
	)
	api.Get("/",
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.ListApplications,
	)
	api.Get("/mine",
		authMiddleware.RequireScope(auth.ScopeApplicationsOwn),
		handlers.ListMine,
	)
	api.Get("/facets",
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.Facets,
	)
	api.Get("/export",
		authMiddleware.RequireScope(auth.ScopeApplicationsExport),
		handlers.ExportCSV,
	)
	api.Post("/bulk/status",
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.BulkUpdateStatus,
	)

	api.Get("/:id", handlers.GetApplication)
	api.Patch("/:id/status",
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.UpdateStatus,
	)
	api.Delete("/:id",
		authMiddleware.RequireScope(auth.ScopeApplicationsOwn),
		handlers.Withdraw,
	)
}
