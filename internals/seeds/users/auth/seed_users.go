package user

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"tahfidz_backend/internals/features/users/user/dto"
	"tahfidz_backend/internals/features/users/user/service"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type UserSeed struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// SeedUsers membuat akun yang belum ada; email yang sudah terdaftar dilewati.
// Mengembalikan jumlah akun baru.
func SeedUsers(ctx context.Context, svc *service.UserService, inputs []UserSeed) int {
	created := 0
	for _, data := range inputs {
		_, err := svc.Create(ctx, dto.CreateUserRequest{
			Email:    data.Email,
			Password: data.Password,
			FullName: data.FullName,
			Role:     data.Role,
		})
		var fe *fiber.Error
		switch {
		case err == nil:
			created++
			log.Printf("✅ Berhasil insert user '%s'", data.Email)
		case errors.As(err, &fe) && fe.Code == fiber.StatusConflict:
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
		default:
			log.Printf("❌ Gagal insert user '%s': %v", data.Email, err)
		}
	}
	return created
}

func SeedUsersFromJSON(ctx context.Context, svc *service.UserService, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}
	SeedUsers(ctx, svc, inputs)
}

// SeedAdminFromEnv membuat admin pertama dari SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func SeedAdminFromEnv(ctx context.Context, svc *service.UserService) {
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	name := strings.TrimSpace(os.Getenv("SEED_ADMIN_NAME"))
	if name == "" {
		name = "Administrator"
	}
	SeedUsers(ctx, svc, []UserSeed{{Email: email, Password: password, FullName: name, Role: "admin"}})
}
