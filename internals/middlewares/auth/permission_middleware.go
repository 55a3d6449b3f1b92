package auth

import (
	"strings"

	"tahfidz_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
)

// RequirePermission lolos jika role punya salah satu permission.
func RequirePermission(perms ...constants.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
		}
		for _, p := range perms {
			if id.Can(p) {
				return c.Next()
			}
		}
		names := make([]string, len(perms))
		for i, p := range perms {
			names[i] = string(p)
		}
		return fiber.NewError(fiber.StatusForbidden, constants.PermissionError(id.Role, constants.Permission(strings.Join(names, "|"))))
	}
}
