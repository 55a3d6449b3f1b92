package route

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/progress/summary/controller"
	"tahfidz_backend/internals/features/progress/summary/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// SummaryRoutes didaftarkan setelah route laporan supaya /progress/report.* tidak tertangkap :kelas.
func SummaryRoutes(r fiber.Router, svc *service.Service) {
	sc := controller.NewSummaryController(svc)

	view := auth.RequirePermission(constants.PermProgressView)

	g := r.Group("/progress")
	g.Get("/", view, sc.Overview)
	g.Post("/refresh", auth.RequirePermission(constants.PermTargetManage), sc.Refresh)
	g.Get("/:kelas", view, sc.Class)
}
