package seeds

import (
	"context"
	"log"
	"os"

	userService "tahfidz_backend/internals/features/users/user/service"
	users "tahfidz_backend/internals/seeds/users/auth"
)

// RunAllSeeds aman dijalankan berulang; data yang sudah ada dilewati.
func RunAllSeeds(ctx context.Context, svc *userService.UserService) {
	//* User
	users.SeedAdminFromEnv(ctx, svc)

	if path := os.Getenv("SEED_USERS_FILE"); path != "" {
		users.SeedUsersFromJSON(ctx, svc, path)
	}
	log.Println("[INFO] Seed selesai")
}
