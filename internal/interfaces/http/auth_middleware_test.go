package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Intendencia-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubResolver acepta los tokens registrados en el mapa.
type stubResolver map[string]entity.Identity

func (s stubResolver) Resolve(_ context.Context, token string) (entity.Identity, error) {
	id, ok := s[token]
	if !ok {
		return entity.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

var resolver = stubResolver{
	"tok-admin":     {UserID: 1, Username: "admin1", Role: entity.RoleAdmin},
	"tok-commander": {UserID: 2, Username: "commander1", Role: entity.RoleBaseCommander, HomeBaseID: ptr(1)},
	"tok-logistics": {UserID: 3, Username: "logistics1", Role: entity.RoleLogisticsOfficer, HomeBaseID: ptr(1)},
	"tok-sin-rol":   {UserID: 4, Username: "legacy"},
}

func ptr(v int64) *int64 { return &v }

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver la identidad
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(resolver),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			id, _ := apphttp.GetIdentity(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "role": id.Role})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
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
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleLogisticsOfficer)
	resp := doRequest(t, app, "Bearer tok-logistics")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_CommanderBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-commander")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_IdentidadSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-sin-rol")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Token tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenDesconocido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer token.invalido.aqui")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_DejaIdentidadEnLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(resolver), func(c *fiber.Ctx) error {
		id, ok := apphttp.GetIdentity(c)
		if !ok {
			return errors.New("sin identidad")
		}
		return c.JSON(fiber.Map{"user_id": id.UserID, "home_base_id": id.HomeBaseID, "role": id.Role})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer tok-commander")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 2, body["user_id"])
	assert.EqualValues(t, 1, body["home_base_id"])
	assert.Equal(t, entity.RoleBaseCommander, body["role"])
}
