package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "estoque-api-test"
)

type session struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Code   string `json:"code"`
}

// guarded monta GET /protected con guard + RequireRole(roles...) y un handler que
// devuelve la identidad publicada en Locals.
func guarded(guard fiber.Handler, roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", guard, apphttp.RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.JSON(session{UserID: apphttp.GetUserID(c), Role: apphttp.GetRole(c)})
	})
	return app
}

func bearer(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, authorization string) (int, session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAuthMiddleware(t *testing.T) {
	foreign, _, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", "outro-sistema", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name     string
		roles    []string
		header   string
		status   int
		code     string
		wantRole string
	}{
		{name: "admin en ruta admin", roles: []string{"admin"}, header: bearer(t, "admin", time.Hour), status: 200, wantRole: "admin"},
		{name: "operador en ruta compartida", roles: []string{"admin", "operador"}, header: bearer(t, "operador", time.Hour), status: 200, wantRole: "operador"},
		{name: "operador en ruta admin", roles: []string{"admin"}, header: bearer(t, "operador", time.Hour), status: 403, code: "FORBIDDEN"},
		{name: "rol desconocido", roles: []string{"admin"}, header: bearer(t, "visitante", time.Hour), status: 403, code: "FORBIDDEN"},
		{name: "sin header", roles: []string{"admin"}, status: 401, code: "MISSING_TOKEN"},
		{name: "esquema Basic", roles: []string{"admin"}, header: "Basic dXNlcjpwYXNz", status: 401, code: "INVALID_TOKEN"},
		{name: "token basura", roles: []string{"admin"}, header: "Bearer token.invalido.aqui", status: 401, code: "INVALID_TOKEN"},
		{name: "token vencido", roles: []string{"admin"}, header: bearer(t, "admin", -time.Hour), status: 401, code: "INVALID_TOKEN"},
		{name: "issuer ajeno", roles: []string{"admin"}, header: "Bearer " + foreign, status: 401, code: "INVALID_TOKEN"},
		{name: "esquema en minúsculas", roles: []string{"admin"}, header: strings.Replace(bearer(t, "admin", time.Hour), "Bearer", "bearer", 1), status: 200, wantRole: "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := guarded(apphttp.AuthMiddleware(testJWTSecret, testIssuer), tc.roles...)
			status, body := get(t, app, tc.header)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, testUserID, body.UserID)
				assert.Equal(t, tc.wantRole, body.Role)
			}
		})
	}
}

// Sin guard previo no hay rol en Locals.
func TestRequireRole_SinRol(t *testing.T) {
	app := guarded(func(c *fiber.Ctx) error { return c.Next() }, "admin")
	status, body := get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body.Code)
}

func TestLocalAccess_PasaComoAdmin(t *testing.T) {
	app := guarded(apphttp.LocalAccess(), "admin")
	status, body := get(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body.UserID)
	assert.Equal(t, "admin", body.Role)
}
