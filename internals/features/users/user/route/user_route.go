package route

import (
	"tahfidz_backend/internals/features/users/user/controller"
	"tahfidz_backend/internals/features/users/user/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Mounted di group /api/a, sudah di belakang RequirePermission(users.manage).
func UserAdminRoutes(r fiber.Router, svc *service.UserService) {
	uc := controller.NewUserController(svc, validator.New())

	g := r.Group("/users")
	g.Get("/", uc.List)
	g.Get("/:id", uc.Get)
	g.Post("/", uc.Create)
	g.Patch("/:id", uc.Update)
	g.Post("/:id/reset-password", uc.ResetPassword)
	g.Delete("/:id", uc.Delete)
}
