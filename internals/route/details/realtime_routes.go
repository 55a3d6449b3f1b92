package details

import (
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/realtime"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// Browser tidak bisa set header Authorization di websocket, jadi protect
// di sini mengizinkan ?token=.
func RealtimeRoutes(app *fiber.App, hub *realtime.Hub, protect fiber.Handler) {
	app.Get("/api/realtime/ws",
		realtime.UpgradeGuard,
		protect,
		auth.RequirePermission(constants.PermDashboardView),
		hub.WSHandler(),
	)
}
