package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// MsgAdminRequired is the 403 message for admin-only routes.
const MsgAdminRequired = "admin access required"

// RequireRole ensures the authenticated identity carries role.
// It must run after Authenticator.Handle.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgTokenRequired)
		}
		if !identity.HasRole(role) {
			if role == domain.RoleAdmin {
				return apperrors.NewForbidden(MsgAdminRequired)
			}
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin is shorthand for RequireRole(domain.RoleAdmin).
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
