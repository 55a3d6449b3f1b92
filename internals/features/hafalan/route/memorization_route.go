package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/hafalan/controller"
	"tahfidz_backend/internals/features/hafalan/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func MemorizationRoutes(r fiber.Router, svc *service.MemorizationService) {
	mc := controller.NewMemorizationController(svc, validator.New())

	view := auth.RequirePermission(constants.PermHafalanView)
	manage := auth.RequirePermission(constants.PermHafalanManage)

	g := r.Group("/hafalan")
	g.Get("/", view, mc.List)
	g.Get("/santri/:id/history", view, mc.History)
	g.Post("/", manage, mc.Create)
	g.Delete("/:id", manage, mc.Delete)
}
