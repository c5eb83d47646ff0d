package dashboardapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/recruitment/dashboard/dashboardsrv"
)

// Handlers provides HTTP handlers for the admin dashboard
type Handlers struct {
	service *dashboardsrv.DashboardService
}

// NewHandlers creates a new dashboard handlers instance
func NewHandlers(service *dashboardsrv.DashboardService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Overview returns the aggregated counts and recent applications
// GET /api/dashboard
func (h *Handlers) Overview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// RegisterRoutes registers the dashboard routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	app.Get("/api/dashboard",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeDashboardView),
		handlers.Overview,
	)
}
