package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/utils"
)

// TokenVerifier checks a bearer token and returns the user id and role.
type TokenVerifier interface {
	VerifyToken(token string) (int64, string, error)
}

// Locals keys populated by the auth middleware.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// BearerAuth returns a middleware that validates bearer tokens and stores
// the caller's identity in the request locals.
func BearerAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		userID, role, err := verifier.VerifyToken(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, role)

		return c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// It must run after BearerAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalUserRole).(string)
		if role != models.RoleAdmin {
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		}
		return c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, or 0 when absent.
func UserIDFromContext(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// RoleFromContext returns the authenticated user's role, or "" when absent.
func RoleFromContext(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalUserRole).(string)
	return role
}
