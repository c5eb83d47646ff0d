package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/shiftboard/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated caller stored on the request
type AuthContext struct {
	UserID kernel.UserID
	Email  kernel.Email
	Role   Role
	Scopes []string
}

func (a *AuthContext) IsAdmin() bool { return a != nil && a.Role == RoleAdmin }

func (a *AuthContext) HasScope(scope string) bool {
	return a != nil && HasScope(a.Scopes, scope)
}

// Authenticate requires a valid bearer token
func Authenticate(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}
		setAuthContext(c, claims)
		return c.Next()
	}
}

// OptionalAuthenticate reads a bearer token when present. An invalid token is
// still rejected.
func OptionalAuthenticate(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return Authenticate(tokens)(c)
	}
}

// RequireRole rejects callers without one of roles. Must run after Authenticate.
func RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, r := range roles {
			if ac.Role == r {
				return c.Next()
			}
		}
		return ErrForbidden().WithDetail("role", ac.Role)
	}
}

// RequireScope rejects callers lacking scope. Must run after Authenticate.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !ac.HasScope(scope) {
			return ErrForbidden().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetAuthContext extracts the caller from the request
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	return ac, ok && ac != nil
}

func setAuthContext(c *fiber.Ctx, claims *TokenClaims) {
	scopes := claims.Scopes
	if len(scopes) == 0 {
		scopes = ScopesFor(claims.Role)
	}
	c.Locals(authContextKey, &AuthContext{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Scopes: scopes,
	})
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingToken()
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken().WithDetail("reason", "invalid authorization format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// TokenMiddleware bundles the auth handlers used when registering routes
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return Authenticate(m.tokens)
}

func (m *TokenMiddleware) OptionalAuthenticate() fiber.Handler {
	return OptionalAuthenticate(m.tokens)
}

func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return RequireScope(scope)
}

func (m *TokenMiddleware) RequireRole(roles ...Role) fiber.Handler {
	return RequireRole(roles...)
}
