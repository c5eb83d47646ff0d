package sessionapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/recruitment/session"
	"github.com/Abraxas-365/shiftboard/recruitment/session/sessionsrv"
)

// Handlers provides HTTP handlers for session state
type Handlers struct {
	service *sessionsrv.SessionService
}

// NewHandlers creates a new session handlers instance
func NewHandlers(service *sessionsrv.SessionService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Current returns the caller's session state. A query string restores the
// job browser view it encodes.
// GET /api/session
func (h *Handlers) Current(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var state *session.State
	var err error
	if raw := string(c.Request().URI().QueryString()); raw != "" {
		state, err = h.service.Restore(c.Context(), authContext, raw)
	} else {
		state, err = h.service.Current(c.Context(), authContext)
	}
	if err != nil {
		return err
	}
	return c.JSON(state.ToResponse())
}

// Dispatch applies actions to the caller's session state
// POST /api/session/actions
func (h *Handlers) Dispatch(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req session.DispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	state, err := h.service.Dispatch(c.Context(), authContext, req)
	if err != nil {
		return err
	}
	return c.JSON(state.ToResponse())
}

// ============================================================================
// Routes
// ============================================================================

// RegisterRoutes registers the session routes. Every route needs a signed-in caller.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/session", authMiddleware.Authenticate())

	api.Get("/", handlers.Current)
	api.Post("/actions", handlers.Dispatch)
}
