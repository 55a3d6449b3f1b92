package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/progress/report/controller"
	"tahfidz_backend/internals/features/progress/report/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(r fiber.Router, svc *service.ReportService) {
	rc := controller.NewReportController(svc)
	export := auth.RequirePermission(constants.PermReportExport)

	r.Get("/progress/report.pdf", export, rc.PDF)
	r.Get("/progress/report.xlsx", export, rc.XLSX)
}
