package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/authz"
	apperrors "github.com/spec-kit/grievance-service/pkg/util/errorutil"
)

// RequirePermission consults the authorization policy for the
// authenticated principal's role before dispatching to a handler.
func RequirePermission(op authz.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !authz.Allowed(principal.User.Role, op) {
			return apperrors.NewForbidden("operation not permitted for role")
		}
		return c.Next()
	}
}
