package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Practicas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Practicas-api/pkg/jwt"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "practicas-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT de acceso con el rol indicado.
func tokenForRole(t *testing.T, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, string(role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET al path y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error bool   `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Error)
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_CoordinacionAccede(t *testing.T) {
	app := buildTestApp(entity.RoleCoordinator)
	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleCoordinator))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, string(entity.RoleCoordinator), body["role"])
}

func TestRequireRole_UnoDeVariosRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdvisor, entity.RoleTutor)
	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleTutor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EstudianteBloqueado(t *testing.T) {
	app := buildTestApp(entity.RoleCoordinator)
	resp := doRequest(t, app, "/protected", tokenForRole(t, entity.RoleStudent))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCoordinator)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", errorCode(t, resp))
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCoordinator)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleCoordinator)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_RefreshNoSirveComoAcceso(t *testing.T) {
	app := buildTestApp(entity.RoleCoordinator)
	tok, err := pkgjwt.GenerateRefresh(testJWTSecret, testUserID, "", string(entity.RoleCoordinator), testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireCapability
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireCapability(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/evaluate",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(entity.CapEvaluateDeliverables),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)

	cases := map[entity.Role]int{
		entity.RoleTutor:       http.StatusNoContent,
		entity.RoleAdvisor:     http.StatusForbidden,
		entity.RoleStudent:     http.StatusForbidden,
		entity.RoleCoordinator: http.StatusForbidden,
	}
	for role, want := range cases {
		t.Run(string(role), func(t *testing.T) {
			resp := doRequest(t, app, "/evaluate", tokenForRole(t, role))
			defer resp.Body.Close()
			assert.Equal(t, want, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	resp := doRequest(t, app, "/me", tokenForRole(t, entity.RoleTutor))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, string(entity.RoleTutor), body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ErrorHandler y health
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	resp := doRequest(t, app, "/no-existe", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestErrorHandler_ErrorNoClasificadoEs500(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp := doRequest(t, app, "/boom", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
	assert.NotContains(t, string(body), "unexpected EOF", "el mensaje interno no se expone")
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	ok := func(_ context.Context) error { return nil }
	down := func(_ context.Context) error { return io.ErrClosedPipe }

	app.Get("/health", apphttp.NewHealthHandler(map[string]apphttp.HealthCheck{"postgres": ok}).Check)
	app.Get("/degraded", apphttp.NewHealthHandler(map[string]apphttp.HealthCheck{"postgres": ok, "redis": down}).Check)

	resp := doRequest(t, app, "/health", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := doRequest(t, app, "/degraded", "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "down"}, body.Checks)
}
