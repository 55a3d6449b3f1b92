package service

import (
	"context"
	"testing"
	"time"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/databases/gateway"
	authHelper "tahfidz_backend/internals/features/users/auth/helper"
	"tahfidz_backend/internals/features/users/user/dto"
	"tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func newUserService() *UserService {
	return NewUserService(gateway.NewMemoryStore[model.UserModel]("users", "id"))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	u, err := svc.Create(ctx, dto.CreateUserRequest{
		Email: "  Ali@Tahfidz.ID ", Password: "rahasia123", FullName: "  Ust.  Ali ", Role: "Ustadz",
	})
	require.NoError(t, err)
	assert.Equal(t, "ali@tahfidz.id", u.Email)
	assert.Equal(t, "Ust. Ali", u.FullName)
	assert.Equal(t, constants.RoleUstadz, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "rahasia123", u.Password)
	assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "rahasia123"))

	cases := []struct {
		name string
		req  dto.CreateUserRequest
		code int
	}{
		{"email sudah dipakai", dto.CreateUserRequest{Email: "ALI@tahfidz.id", Password: "rahasia123", FullName: "Ali Dua", Role: "ustadz"}, fiber.StatusConflict},
		{"password lemah", dto.CreateUserRequest{Email: "b@tahfidz.id", Password: "pendek", FullName: "Budi", Role: "ustadz"}, fiber.StatusBadRequest},
		{"password tanpa angka", dto.CreateUserRequest{Email: "b@tahfidz.id", Password: "tanpaangka", FullName: "Budi", Role: "ustadz"}, fiber.StatusBadRequest},
		{"role tidak dikenal", dto.CreateUserRequest{Email: "b@tahfidz.id", Password: "rahasia123", FullName: "Budi", Role: "tamu"}, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.Equal(t, tc.code, fiberCode(t, err))
		})
	}

	rows, total, err := svc.List(ctx, ListFilter{}, helper.Paging{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rows, 1)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	admin, err := svc.Create(ctx, dto.CreateUserRequest{Email: "admin@tahfidz.id", Password: "admin12345", FullName: "Admin", Role: "admin"})
	require.NoError(t, err)
	ust, err := svc.Create(ctx, dto.CreateUserRequest{Email: "ust@tahfidz.id", Password: "ustadz123", FullName: "Ust Umar", Role: "ustadz"})
	require.NoError(t, err)

	cases := []struct {
		name string
		id   uuid.UUID
		req  dto.UpdateUserRequest
		code int
	}{
		{"nonaktifkan diri sendiri", admin.ID, dto.UpdateUserRequest{IsActive: boolPtr(false)}, fiber.StatusBadRequest},
		{"turunkan role sendiri", admin.ID, dto.UpdateUserRequest{Role: strPtr("ustadz")}, fiber.StatusBadRequest},
		{"role tidak dikenal", ust.ID, dto.UpdateUserRequest{Role: strPtr("tamu")}, fiber.StatusBadRequest},
		{"user tidak ada", uuid.New(), dto.UpdateUserRequest{FullName: strPtr("Siapa")}, fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, admin.ID, tc.id, tc.req)
			assert.Equal(t, tc.code, fiberCode(t, err))
		})
	}

	got, err := svc.Update(ctx, admin.ID, ust.ID, dto.UpdateUserRequest{
		FullName: strPtr(" Ust.  Umar "), Role: strPtr("Koordinator"), IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ust. Umar", got.FullName)
	assert.Equal(t, constants.RoleKoordinator, got.Role)
	assert.False(t, got.IsActive)

	active, err := svc.IsActive(ctx, ust.ID)
	require.NoError(t, err)
	assert.False(t, active)

	off := false
	rows, total, err := svc.List(ctx, ListFilter{IsActive: &off}, helper.Paging{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, ust.ID, rows[0].ID)
}

func TestResetPasswordAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	admin, err := svc.Create(ctx, dto.CreateUserRequest{Email: "admin@tahfidz.id", Password: "admin12345", FullName: "Admin", Role: "admin"})
	require.NoError(t, err)
	ust, err := svc.Create(ctx, dto.CreateUserRequest{Email: "ust@tahfidz.id", Password: "ustadz123", FullName: "Ust Umar", Role: "ustadz"})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, svc.ResetPassword(ctx, ust.ID, "lemah")))
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, svc.ResetPassword(ctx, uuid.New(), "baru12345")))

	require.NoError(t, svc.ResetPassword(ctx, ust.ID, "baru12345"))
	u, err := svc.FindByEmail(ctx, " UST@tahfidz.id")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "baru12345"))
	assert.Error(t, authHelper.CheckPasswordHash(u.Password, "ustadz123"))

	at := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	require.NoError(t, svc.TouchLogin(ctx, ust.ID, at))
	u, err = svc.FindByID(ctx, ust.ID)
	require.NoError(t, err)
	require.NotNil(t, u.LastLoginAt)
	assert.True(t, at.Equal(*u.LastLoginAt))

	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, svc.Delete(ctx, admin.ID, admin.ID)))
	require.NoError(t, svc.Delete(ctx, admin.ID, ust.ID))
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, svc.Delete(ctx, admin.ID, ust.ID)))

	missing, err := svc.FindByEmail(ctx, "ust@tahfidz.id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
