package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "edubreezy_backend/internals/helpers"
)

// RequireRoles menolak request bila role di token tidak termasuk allowed.
// errMessage dibuat lewat constants.RoleErrorAdmin/RoleErrorStaff.
func RequireRoles(errMessage string, allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if _, ok := allowedSet[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, errMessage)
		}
		return c.Next()
	}
}
