package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
	apphttp "github.com/luxe-fashion/storefront-api/internal/interfaces/http"
	pkgjwt "github.com/luxe-fashion/storefront-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testAccountID = "00000000-0000-0000-0000-000000000001"
	testEmail     = "cliente@example.com"
	testIssuer    = "storefront-test"
	testExpDays   = 7
)

// stubUserRepo devuelve siempre la misma cuenta (o nil si account == nil).
type stubUserRepo struct {
	account *entity.User
}

func (r *stubUserRepo) Create(*entity.User) error { return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	if r.account == nil || r.account.ID != id {
		return nil, nil
	}
	cp := *r.account
	return &cp, nil
}
func (r *stubUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *stubUserRepo) GetByGoogleID(string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(*entity.User) error                  { return nil }
func (r *stubUserRepo) List(int, int) ([]*entity.User, error)      { return nil, nil }
func (r *stubUserRepo) Delete(string) error                        { return nil }

// failingUserRepo simula un store caído: toda consulta falla.
type failingUserRepo struct {
	stubUserRepo
}

func (r *failingUserRepo) GetByID(string) (*entity.User, error) {
	return nil, errors.New("conexión rechazada")
}

func activeAccount(role string) *entity.User {
	return &entity.User{
		ID:           testAccountID,
		Name:         "Cuenta de Prueba",
		Email:        testEmail,
		PasswordHash: "$2a$10$hash-que-no-debe-filtrarse",
		Role:         role,
		Status:       entity.StatusActive,
	}
}

// buildTestApp construye una aplicación Fiber mínima con el guard y una ruta
// /protected que devuelve la cuenta resuelta.
func buildTestApp(repo repository.UserRepository, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, repo)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		account := apphttp.CurrentAccount(c)
		return c.JSON(fiber.Map{
			"id":    account.ID,
			"email": account.Email,
			"role":  account.Role,
			"hash":  account.PasswordHash,
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un token de sesión para la cuenta de prueba.
func tokenFor(t *testing.T, role string, expDays int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, testEmail, role, testIssuer, expDays)
	require.NoError(t, err, "debe generarse un token válido")
	return "Bearer " + tok
}

// doRequest lanza GET /protected con el header dado.
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
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido_AdjuntaCuenta(t *testing.T) {
	repo := &stubUserRepo{account: activeAccount(entity.RoleCustomer)}
	app := buildTestApp(repo)

	resp := doRequest(t, app, tokenFor(t, entity.RoleCustomer, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAccountID, body["id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Empty(t, body["hash"], "el password hash no debe viajar en la cuenta adjunta")
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{account: activeAccount(entity.RoleCustomer)})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{account: activeAccount(entity.RoleCustomer)})
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{account: activeAccount(entity.RoleCustomer)})
	// Expiración -1 día (ya expirado)
	resp := doRequest(t, app, tokenFor(t, entity.RoleCustomer, -1))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TOKEN_EXPIRED")
}

// Token válido pero la cuenta fue borrada después de emitirlo.
func TestAuthMiddleware_CuentaBorrada_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{account: nil})
	resp := doRequest(t, app, tokenFor(t, entity.RoleCustomer, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// Un fallo del store no es culpa del token: 500 INTERNAL, no 401.
func TestAuthMiddleware_StoreCaido_Retorna500(t *testing.T) {
	app := buildTestApp(&failingUserRepo{})

	resp := doRequest(t, app, tokenFor(t, entity.RoleCustomer, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
	assert.NotContains(t, string(body), "UNAUTHORIZED")
}

// Token válido pero la cuenta hizo logout (status inactive): el guard corta.
func TestAuthMiddleware_CuentaInactiva_Retorna401(t *testing.T) {
	account := activeAccount(entity.RoleCustomer)
	account.Status = entity.StatusInactive
	app := buildTestApp(&stubUserRepo{account: account})

	resp := doRequest(t, app, tokenFor(t, entity.RoleCustomer, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCOUNT_INACTIVE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminPasa(t *testing.T) {
	repo := &stubUserRepo{account: activeAccount(entity.RoleAdmin)}
	app := buildTestApp(repo, apphttp.RequireAdmin())

	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_ClienteBloqueado(t *testing.T) {
	repo := &stubUserRepo{account: activeAccount(entity.RoleCustomer)}
	app := buildTestApp(repo, apphttp.RequireAdmin())

	resp := doRequest(t, app, tokenFor(t, entity.RoleCustomer, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El rol sale de la DB, no del token: un token con claim admin sobre una
// cuenta customer no escala privilegios.
func TestRequireAdmin_RolDelTokenNoCuenta(t *testing.T) {
	repo := &stubUserRepo{account: activeAccount(entity.RoleCustomer)}
	app := buildTestApp(repo, apphttp.RequireAdmin())

	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin, testExpDays))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests OptionalAuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestOptionalAuth_SinTokenSigueSinCuenta(t *testing.T) {
	repo := &stubUserRepo{account: activeAccount(entity.RoleCustomer)}
	app := fiber.New()
	app.Get("/maybe", apphttp.OptionalAuthMiddleware(testJWTSecret, repo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": apphttp.CurrentAccount(c) != nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["authenticated"])
}

func TestOptionalAuth_ConTokenAdjuntaCuenta(t *testing.T) {
	repo := &stubUserRepo{account: activeAccount(entity.RoleCustomer)}
	app := fiber.New()
	app.Get("/maybe", apphttp.OptionalAuthMiddleware(testJWTSecret, repo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": apphttp.CurrentAccount(c) != nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", tokenFor(t, entity.RoleCustomer, testExpDays))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["authenticated"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, testEmail, entity.RoleCustomer, testIssuer, testExpDays)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testAccountID, claims.AccountID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, entity.RoleCustomer, claims.Role)
}

func TestJWT_TokenExpirado_ErrExpired(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, testEmail, entity.RoleCustomer, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, testEmail, entity.RoleCustomer, testIssuer, testExpDays)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
