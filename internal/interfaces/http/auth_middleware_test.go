package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/bikehouse-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bikehouse-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildProtectedApp monta GET /protected con AuthMiddleware y, opcionalmente, RequireAdmin.
func buildProtectedApp(env *testEnv, admin bool) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(env.authUC)}
	if admin {
		handlers = append(handlers, apphttp.RequireAdmin(env.roleGate))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "email": apphttp.GetEmail(c)})
	})
	app.Get("/protected", handlers...)
	return app
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildProtectedApp(newTestEnv(t, false), false)
	resp := getProtected(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_SinPrefijoBearer_Retorna401(t *testing.T) {
	app := buildProtectedApp(newTestEnv(t, false), false)
	resp := getProtected(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna403(t *testing.T) {
	app := buildProtectedApp(newTestEnv(t, false), false)
	tok, err := pkgjwt.Generate(testJWTSecret, "a@x.com", testIssuer, -time.Minute)
	require.NoError(t, err)

	resp := getProtected(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "expirado y firma inválida son el mismo caso")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaAlterada_Retorna403(t *testing.T) {
	app := buildProtectedApp(newTestEnv(t, false), false)
	tok, err := pkgjwt.Generate("otro-secret", "a@x.com", testIssuer, time.Hour)
	require.NoError(t, err)

	resp := getProtected(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalformado_Retorna403(t *testing.T) {
	app := buildProtectedApp(newTestEnv(t, false), false)
	resp := getProtected(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido_ExtraeEmail(t *testing.T) {
	env := newTestEnv(t, false)
	app := buildProtectedApp(env, false)

	resp := getProtected(t, app, env.bearer(t, "a@x.com"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "a@x.com", body["email"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	env := newTestEnv(t, false)
	env.createAdmin(t, "root@x.com")
	app := buildProtectedApp(env, true)

	resp := getProtected(t, app, env.bearer(t, "root@x.com"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_CompradorBloqueado(t *testing.T) {
	env := newTestEnv(t, false)
	env.createUser(t, "a@x.com", "buyer")
	app := buildProtectedApp(env, true)

	resp := getProtected(t, app, env.bearer(t, "a@x.com"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "FORBIDDEN"))
}
