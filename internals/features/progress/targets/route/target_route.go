package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/progress/targets/controller"
	"tahfidz_backend/internals/features/progress/targets/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func TargetRoutes(r fiber.Router, svc *service.TargetService) {
	tc := controller.NewTargetController(svc, validator.New())

	view := auth.RequirePermission(constants.PermTargetView)
	manage := auth.RequirePermission(constants.PermTargetManage)

	g := r.Group("/targets")
	g.Get("/", view, tc.List)
	g.Get("/preset", view, tc.Preset)
	g.Get("/:kelas", view, tc.Get)
	g.Put("/", manage, tc.Upsert)
	g.Delete("/:kelas", manage, tc.Delete)
}
