package details

import (
	authRoute "tahfidz_backend/internals/features/users/auth/route"
	authService "tahfidz_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, svc *authService.AuthService, protect fiber.Handler, secureCookie bool) {
	authRoute.AuthRoutes(app, svc, protect, secureCookie)
}
