package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/attendance/controller"
	"tahfidz_backend/internals/features/attendance/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func AttendanceRoutes(r fiber.Router, svc *service.AttendanceService) {
	ac := controller.NewAttendanceController(svc, validator.New())

	view := auth.RequirePermission(constants.PermAttendanceView)
	manage := auth.RequirePermission(constants.PermAttendanceManage)
	export := auth.RequirePermission(constants.PermReportExport)

	g := r.Group("/attendance")
	g.Get("/", view, ac.List)
	g.Get("/recap", view, ac.Recap)
	g.Get("/recap.xlsx", export, ac.RecapXLSX)
	g.Post("/", manage, ac.Create)
	g.Patch("/:id", manage, ac.Update)
	g.Delete("/:id", manage, ac.Delete)
}
