package user

import (
	"context"
	"testing"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/users/user/model"
	"tahfidz_backend/internals/features/users/user/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedUsersSkipsExisting(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUserService(gateway.NewMemoryStore[model.UserModel]("users", "id"))

	seed := []UserSeed{
		{Email: "Admin@Tahfidz.id", Password: "rahasia123", FullName: "Admin", Role: "admin"},
		{Email: "ust@tahfidz.id", Password: "rahasia123", FullName: "Ust. Ali", Role: "ustadz"},
		{Email: "lemah@tahfidz.id", Password: "pendek", FullName: "Lemah", Role: "santri"},
	}
	assert.Equal(t, 2, SeedUsers(ctx, svc, seed))
	assert.Equal(t, 0, SeedUsers(ctx, svc, seed))

	u, err := svc.FindByEmail(ctx, "admin@tahfidz.id")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsActive)
}

func TestSeedAdminFromEnv(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUserService(gateway.NewMemoryStore[model.UserModel]("users", "id"))

	SeedAdminFromEnv(ctx, svc)
	u, _ := svc.FindByEmail(ctx, "root@tahfidz.id")
	assert.Nil(t, u)

	t.Setenv("SEED_ADMIN_EMAIL", "root@tahfidz.id")
	t.Setenv("SEED_ADMIN_PASSWORD", "rahasia123")
	SeedAdminFromEnv(ctx, svc)
	u, err := svc.FindByEmail(ctx, "root@tahfidz.id")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Administrator", u.FullName)
	assert.EqualValues(t, "admin", u.Role)
}
