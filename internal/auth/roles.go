package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hostel-complaints/internal/domain"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

// RoleAllowed reports whether role appears in the allow-list. An empty list
// permits any authenticated role.
func RoleAllowed(role domain.Role, allowed []domain.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

// RequireRole gates a route on the given allow-list.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !RoleAllowed(actor.Role, allowed) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
