package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/rollcall/internal/auth"
	"github.com/campuskit/rollcall/internal/domain"
)

const (
	// LocalUserID is the key to retrieve the authenticated user id from context
	LocalUserID = "user_id"
	// LocalUserRole is the key to retrieve the authenticated role from context
	LocalUserRole = "user_role"
	// LocalClaims is the key to retrieve the full token claims from context
	LocalClaims = "claims"
)

// AuthDependencies contains dependencies for request authentication
type AuthDependencies struct {
	JWTService *auth.JWTService
	Logger     *slog.Logger
}

// Auth creates an authentication middleware using Bearer JWT tokens.
// allowedRoles restricts access; empty means any authenticated user.
func Auth(deps AuthDependencies, allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			deps.Logger.Debug("missing authorization header",
				slog.String("path", c.Path()),
			)
			return domain.ErrUnauthorized
		}

		claims, err := deps.JWTService.ValidateToken(token)
		if err != nil {
			deps.Logger.Warn("invalid token", slog.Any("error", err))
			return domain.ErrUnauthorized
		}

		if len(allowedRoles) > 0 && !roleAllowed(claims.Role, allowedRoles) {
			deps.Logger.Warn("insufficient privileges",
				slog.String("role", string(claims.Role)),
				slog.String("path", c.Path()),
			)
			return domain.ErrForbidden
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserRole, claims.Role)
		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetUserID retrieves the authenticated user id from Fiber context
func GetUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals(LocalUserID).(int64)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

// GetUserRole retrieves the authenticated role from Fiber context
func GetUserRole(c *fiber.Ctx) (domain.Role, error) {
	role, ok := c.Locals(LocalUserRole).(domain.Role)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return role, nil
}
