package accountapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/fiberx"
	"github.com/Abraxas-365/shiftboard/pkg/iam/auth"
	"github.com/Abraxas-365/shiftboard/pkg/kernel"
	"github.com/Abraxas-365/shiftboard/recruitment/account"
	"github.com/Abraxas-365/shiftboard/recruitment/account/accountsrv"
)

// Handlers provides HTTP handlers for registration, login and user management
type Handlers struct {
	service *accountsrv.AccountService
}

// NewHandlers creates a new account handlers instance
func NewHandlers(service *accountsrv.AccountService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates a job seeker account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req account.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login exchanges credentials for an access token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req account.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the authenticated account
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	me, err := h.service.Me(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(me)
}

// UpdateMe edits the authenticated account's profile
// PUT /api/auth/me
func (h *Handlers) UpdateMe(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req account.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	updated, err := h.service.UpdateProfile(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(updated.ToResponse())
}

// ListUsers returns one page of the filtered user list
// GET /api/users?search=&role=&page=&page_size=
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	req := account.ListUsersRequest{
		Filters:    fiberx.ParseFilter(c, account.Schema.FieldNames()),
		Pagination: fiberx.ParsePagination(c, kernel.DefaultPageSize),
	}

	users, err := h.service.ListUsers(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// ChangeRole promotes or demotes an account
// PATCH /api/users/:id/role
func (h *Handlers) ChangeRole(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req account.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiberx.Invalid(err)
	}

	updated, err := h.service.ChangeRole(c.Context(), authContext.UserID, kernel.UserID(c.Params("id")), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(updated.ToResponse())
}

// ============================================================================
// Routes
// ============================================================================

// RegisterRoutes registers the auth and user management routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/me", authMiddleware.Authenticate(), handlers.Me)
	authGroup.Put("/me", authMiddleware.Authenticate(), handlers.UpdateMe)

	users := app.Group("/api/users", authMiddleware.Authenticate())
	users.Get("/",
		authMiddleware.RequireScope(auth.ScopeUsersRead),
		handlers.ListUsers,
	)
	users.Patch("/:id/role",
		authMiddleware.RequireScope(auth.ScopeUsersRoles),
		handlers.ChangeRole,
	)
}
