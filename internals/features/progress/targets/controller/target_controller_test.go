package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/progress/targets/model"
	"tahfidz_backend/internals/features/progress/targets/route"
	"tahfidz_backend/internals/features/progress/targets/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/middlewares/auth"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(store gateway.Store[model.TargetConfiguration]) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		role, _ := constants.ParseRole(c.Get("X-Role"))
		auth.SetIdentity(c, auth.Identity{UserID: uuid.New(), Role: role})
		return c.Next()
	})
	route.TargetRoutes(app, service.NewTargetService(store))
	return app
}

func send(t *testing.T, app *fiber.App, role, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", role)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = sonic.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

const validBody = `{"kelas":" 7A ","target_juz":10,
	"merah_min":0,"merah_max":4,"kuning_min":4.1,"kuning_max":7,
	"hijau_min":7.1,"hijau_max":11.4,"biru_min":11.5,"biru_max":20,"pink_threshold":30}`

func TestUpsertTarget(t *testing.T) {
	store := gateway.NewMemoryStore[model.TargetConfiguration]("target_configurations", "id")
	app := newApp(store)

	code, _ := send(t, app, "ustadz", http.MethodPut, "/targets", validBody)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := send(t, app, "koordinator", http.MethodPut, "/targets", validBody)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "7A", data["kelas"])

	again := strings.Replace(validBody, `"target_juz":10`, `"target_juz":12`, 1)
	code, _ = send(t, app, "admin", http.MethodPut, "/targets", again)
	require.Equal(t, http.StatusOK, code)

	code, body = send(t, app, "ustadz", http.MethodGet, "/targets", "")
	require.Equal(t, http.StatusOK, code)
	list := body["data"].([]any)
	require.Len(t, list, 1)
	assert.EqualValues(t, 12, list[0].(map[string]any)["target_juz"])

	code, body = send(t, app, "ustadz", http.MethodGet, "/targets/7A", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 11.4, body["data"].(map[string]any)["hijau_max"])

	code, _ = send(t, app, "koordinator", http.MethodDelete, "/targets/7A", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = send(t, app, "ustadz", http.MethodGet, "/targets/7A", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpsertTargetRejectsInvalid(t *testing.T) {
	store := gateway.NewMemoryStore[model.TargetConfiguration]("target_configurations", "id")
	app := newApp(store)

	cases := map[string]struct {
		body string
		code int
	}{
		"kelas kosong":   {strings.Replace(validBody, `" 7A "`, `""`, 1), http.StatusUnprocessableEntity},
		"target nol":     {strings.Replace(validBody, `"target_juz":10`, `"target_juz":0`, 1), http.StatusUnprocessableEntity},
		"target 31":      {strings.Replace(validBody, `"target_juz":10`, `"target_juz":31`, 1), http.StatusUnprocessableEntity},
		"min > max":      {strings.Replace(validBody, `"merah_min":0`, `"merah_min":5`, 1), http.StatusBadRequest},
		"tumpang tindih": {strings.Replace(validBody, `"kuning_min":4.1`, `"kuning_min":3`, 1), http.StatusBadRequest},
		"biru >= pink":   {strings.Replace(validBody, `"pink_threshold":30`, `"pink_threshold":20`, 1), http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, _ := send(t, app, "admin", http.MethodPut, "/targets", tc.body)
			assert.Equal(t, tc.code, code)
		})
	}

	code, _ := send(t, app, "admin", http.MethodPut, "/targets",
		strings.Replace(validBody, `"hijau_min":7.1`, `"hijau_min":12`, 1))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPreset(t *testing.T) {
	app := newApp(gateway.NewMemoryStore[model.TargetConfiguration]("target_configurations", "id"))
	code, body := send(t, app, "santri", http.MethodGet, "/targets/preset?kelas=8B", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body = send(t, app, "ustadz", http.MethodGet, "/targets/preset?kelas=8B", "")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "8B", data["kelas"])
	assert.EqualValues(t, 10, data["target_juz"])
	assert.EqualValues(t, 30, data["pink_threshold"])
}
