package details

import (
	"tahfidz_backend/internals/constants"
	userRoute "tahfidz_backend/internals/features/users/user/route"
	userService "tahfidz_backend/internals/features/users/user/service"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// 🔐 hanya admin (users.manage); Use berprefix hanya berlaku di /api/a/users.
func UserRoutes(admin fiber.Router, svc *userService.UserService) {
	admin.Use("/users", auth.RequirePermission(constants.PermUsersManage))
	userRoute.UserAdminRoutes(admin, svc)
}
