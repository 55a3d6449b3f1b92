package route

import (
	"tahfidz_backend/internals/features/users/auth/controller"
	"tahfidz_backend/internals/features/users/auth/service"
	rateLimiter "tahfidz_backend/internals/middlewares"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Base: /api/auth. protect = AuthJWT.
func AuthRoutes(app fiber.Router, svc *service.AuthService, protect fiber.Handler, secureCookie bool) {
	ac := controller.NewAuthController(svc, validator.New())
	ac.SecureCookie = secureCookie

	g := app.Group("/api/auth")

	g.Post("/login", rateLimiter.LoginRateLimiter(), ac.Login)

	g.Post("/logout", protect, ac.Logout)
	g.Get("/me", protect, ac.Me)
	g.Post("/change-password", protect, ac.ChangePassword)
}
