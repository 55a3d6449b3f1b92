package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tahfidz_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rahasia-test"

type fakeBlacklist map[string]bool

func (f fakeBlacklist) IsBlacklisted(_ context.Context, tok string) (bool, error) {
	return f[tok], nil
}

type fakeUsers struct {
	active map[uuid.UUID]bool
}

func (f fakeUsers) IsActive(_ context.Context, id uuid.UUID) (bool, error) {
	a, ok := f.active[id]
	if !ok {
		return false, errors.New("not found")
	}
	return a, nil
}

func issue(t *testing.T, id Identity, now time.Time, ttl time.Duration) string {
	t.Helper()
	tok, err := SignToken(testSecret, BuildClaims(id, now, ttl))
	require.NoError(t, err)
	return tok
}

func newApp(o AuthJWTOpts, perms ...constants.Permission) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{AuthJWT(o)}
	if len(perms) > 0 {
		handlers = append(handlers, RequirePermission(perms...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		id, err := MustIdentity(c)
		if err != nil {
			return err
		}
		return c.SendString(string(id.Role) + ":" + id.Name)
	})
	app.Get("/x", handlers...)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func bearer(tok string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestAuthJWT(t *testing.T) {
	now := time.Now()
	ustadz := Identity{UserID: uuid.New(), Email: "u@test.id", Name: "Ust. Ali", Role: constants.RoleUstadz}
	inactive := Identity{UserID: uuid.New(), Name: "Off", Role: constants.RoleAdmin}

	valid := issue(t, ustadz, now, time.Hour)
	expired := issue(t, ustadz, now.Add(-2*time.Hour), time.Hour)
	revoked := issue(t, ustadz, now.Add(-time.Minute), time.Hour)
	inactiveTok := issue(t, inactive, now, time.Hour)
	badRole := issue(t, Identity{UserID: uuid.New(), Role: "tamu"}, now, time.Hour)

	opts := AuthJWTOpts{
		Secret:          testSecret,
		AllowQueryToken: true,
		Blacklist:       fakeBlacklist{revoked: true},
		Users:           fakeUsers{active: map[uuid.UUID]bool{ustadz.UserID: true, inactive.UserID: false}},
	}
	app := newApp(opts)

	code, body := do(t, app, bearer(valid))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ustadz:Ust. Ali", body)

	code, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, app, bearer(expired))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, app, bearer(revoked))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, app, bearer(inactiveTok))
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, app, bearer(badRole))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, app, bearer(valid+"x"))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/x?token="+valid, nil))
	assert.Equal(t, http.StatusOK, code)
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	id := Identity{UserID: uuid.New(), Name: "A", Role: constants.RoleAdmin}
	tok := issue(t, id, time.Now(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})

	code, _ := do(t, newApp(AuthJWTOpts{Secret: testSecret}), req)
	assert.Equal(t, http.StatusUnauthorized, code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	code, _ = do(t, newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}), req)
	assert.Equal(t, http.StatusOK, code)
}

func TestRequirePermission(t *testing.T) {
	now := time.Now()
	ustadz := issue(t, Identity{UserID: uuid.New(), Role: constants.RoleUstadz}, now, time.Hour)
	koord := issue(t, Identity{UserID: uuid.New(), Role: constants.RoleKoordinator}, now, time.Hour)

	app := newApp(AuthJWTOpts{Secret: testSecret}, constants.PermTargetManage)

	code, _ := do(t, app, bearer(ustadz))
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, app, bearer(koord))
	assert.Equal(t, http.StatusOK, code)
}
