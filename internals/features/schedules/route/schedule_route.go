package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/schedules/controller"
	"tahfidz_backend/internals/features/schedules/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func ScheduleRoutes(r fiber.Router, svc *service.ScheduleService) {
	sc := controller.NewScheduleController(svc, validator.New())

	view := auth.RequirePermission(constants.PermScheduleView)
	manage := auth.RequirePermission(constants.PermScheduleManage)

	g := r.Group("/schedules")
	g.Get("/", view, sc.List)
	g.Post("/", manage, sc.Create)
	g.Put("/:id", manage, sc.Update)
	g.Delete("/:id", manage, sc.Delete)
}
