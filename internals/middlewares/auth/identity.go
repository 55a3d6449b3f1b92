package auth

import (
	"tahfidz_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const LocalsIdentity = "identity"

// Identity diisi AuthJWT sekali per request lalu diteruskan eksplisit ke handler.
type Identity struct {
	UserID uuid.UUID      `json:"user_id"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Role   constants.Role `json:"role"`
}

func (i Identity) Can(p constants.Permission) bool {
	return constants.Allowed(i.Role, p)
}

func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(LocalsIdentity, id)
}

func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(LocalsIdentity).(Identity)
	return id, ok && id.UserID != uuid.Nil
}

// MustIdentity untuk handler yang sudah pasti di belakang AuthJWT.
func MustIdentity(c *fiber.Ctx) (Identity, error) {
	id, ok := IdentityFrom(c)
	if !ok {
		return Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - identity tidak ditemukan")
	}
	return id, nil
}
