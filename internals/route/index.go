// file: internals/route/index.go
package routes

import (
	"log"

	"tahfidz_backend/internals/configs"
	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/middlewares/auth"
	routeDetails "tahfidz_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, s *Services) {
	BaseRoutes(app, s)

	protect := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
		Blacklist:           s.Auth,
		Users:               s.Users,
	})

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, s.Auth, protect, configs.GetEnvBool("COOKIE_SECURE", true))

	// ===================== ADMIN PANEL =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + dashboard)...")
	admin := app.Group("/api/a",
		protect,
		auth.RequirePermission(constants.PermDashboardView),
	)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(admin, s.Users)

	log.Println("[INFO] Mounting Akademik routes...")
	routeDetails.AcademicRoutes(admin, routeDetails.AcademicServices{
		Students:   s.Students,
		Teachers:   s.Teachers,
		Attendance: s.Attendance,
		Hafalan:    s.Hafalan,
		Schedules:  s.Schedules,
	})

	log.Println("[INFO] Mounting Progress routes...")
	routeDetails.ProgressRoutes(admin, s.Targets, s.Progress, s.Reports)

	// ===================== REALTIME =====================
	log.Println("[INFO] Mounting Realtime websocket...")
	routeDetails.RealtimeRoutes(app, s.Hub, auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
		AllowQueryToken:     true,
		Blacklist:           s.Auth,
		Users:               s.Users,
	}))
}
