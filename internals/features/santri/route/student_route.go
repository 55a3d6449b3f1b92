package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/santri/controller"
	"tahfidz_backend/internals/features/santri/service"
	"tahfidz_backend/internals/middlewares"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Mounted di group /api/a (sudah AuthJWT).
func StudentRoutes(r fiber.Router, svc *service.StudentService) {
	sc := controller.NewStudentController(svc, validator.New())

	view := auth.RequirePermission(constants.PermSantriView)
	manage := auth.RequirePermission(constants.PermSantriManage)
	export := auth.RequirePermission(constants.PermReportExport)

	g := r.Group("/santri")
	g.Get("/", view, sc.List)
	g.Get("/classes", view, sc.Classes)
	g.Get("/template.csv", manage, sc.Template)
	g.Get("/export.csv", export, sc.ExportCSV)
	g.Get("/export.xlsx", export, sc.ExportXLSX)
	g.Post("/import", manage, middlewares.ImportRateLimiter(), sc.Import)
	g.Get("/:id", view, sc.Get)
	g.Post("/", manage, sc.Create)
	g.Patch("/:id", manage, sc.Update)
	g.Delete("/:id", manage, sc.Delete)
}
