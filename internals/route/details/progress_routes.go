package details

import (
	reportRoute "tahfidz_backend/internals/features/progress/report/route"
	reportService "tahfidz_backend/internals/features/progress/report/service"
	summaryRoute "tahfidz_backend/internals/features/progress/summary/route"
	summaryService "tahfidz_backend/internals/features/progress/summary/service"
	targetRoute "tahfidz_backend/internals/features/progress/targets/route"
	targetService "tahfidz_backend/internals/features/progress/targets/service"

	"github.com/gofiber/fiber/v2"
)

func ProgressRoutes(admin fiber.Router, targets *targetService.TargetService, progress *summaryService.Service, reports *reportService.ReportService) {
	targetRoute.TargetRoutes(admin, targets)
	// report dulu, kalau tidak /progress/report.pdf tertangkap /progress/:kelas
	reportRoute.ReportRoutes(admin, reports)
	summaryRoute.SummaryRoutes(admin, progress)
}
