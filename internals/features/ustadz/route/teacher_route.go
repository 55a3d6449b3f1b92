package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/ustadz/controller"
	"tahfidz_backend/internals/features/ustadz/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(r fiber.Router, svc *service.TeacherService) {
	tc := controller.NewTeacherController(svc, validator.New())

	// daftar ustadz dibutuhkan form absensi & jadwal
	view := auth.RequirePermission(constants.PermAttendanceView)
	manage := auth.RequirePermission(constants.PermUstadzManage)

	g := r.Group("/ustadz")
	g.Get("/", view, tc.List)
	g.Get("/:id", view, tc.Get)
	g.Post("/", manage, tc.Create)
	g.Patch("/:id", manage, tc.Update)
	g.Delete("/:id", manage, tc.Delete)
}
