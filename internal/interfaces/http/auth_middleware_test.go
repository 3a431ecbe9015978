package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/hr-erp-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/hr-erp-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testAccountID  = "00000000-0000-0000-0000-000000000001"
	testEmployeeID = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "hr-erp-test"
)

var testNow = time.Date(2024, time.March, 11, 8, 30, 0, 0, time.UTC)

func testVerifier() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(
		store.Accounts(), store.Employees(), store.TxRunner(),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		bcrypt.MinCost, time.UTC,
	).WithClock(func() time.Time { return testNow })
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testVerifier()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			id := apphttp.GetIdentity(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"role":       apphttp.GetRole(c),
				"employeeId": id.EmployeeID,
			})
		},
	)
	return app
}

func signToken(t *testing.T, role string, issuedAt time.Time, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		AccountID:  testAccountID,
		EmployeeID: testEmployeeID,
		Role:       role,
	}, testIssuer, ttl, issuedAt)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// tokenForRole genera un JWT vigente con el rol indicado.
func tokenForRole(t *testing.T, role entity.Role) string {
	t.Helper()
	return "Bearer " + signToken(t, string(role), testNow, time.Hour)
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
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

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
	assert.Equal(t, testEmployeeID, body["employeeId"], "la identidad del token debe quedar en locals")
}

func TestRequireRole_HRManagerAccedeRutaManagers(t *testing.T) {
	app := buildTestApp(auth.Managers...)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleHRManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmployeeBloqueadoEnRutaManagers(t *testing.T) {
	app := buildTestApp(auth.Managers...)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

// Jerarquía plana: HR_MANAGER no hereda rutas de solo admin.
func TestRequireRole_HRManagerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(auth.AdminOnly...)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleHRManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinRolesPermitidosDejaPasar(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenForRole(t, entity.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_EsquemaIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok := signToken(t, string(entity.RoleAdmin), testNow.Add(-2*time.Hour), time.Hour)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaDeOtroSecreto_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok, err := pkgjwt.Generate("otro-secreto", pkgjwt.Subject{AccountID: testAccountID, Role: "ADMIN"}, testIssuer, time.Hour, testNow)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token sin rol conocido no produce identidad válida.
func TestAuthMiddleware_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+signToken(t, "", testNow, time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_BearerEnMinusculas(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "bearer "+signToken(t, "ADMIN", testNow, time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
