package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxe-fashion/storefront-api/internal/application/usecase"
	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	apphttp "github.com/luxe-fashion/storefront-api/internal/interfaces/http"
)

// buildRouterApp monta el router completo con dobles mínimos. Los usecases
// no inyectados no se alcanzan en estos tests.
func buildRouterApp(userRepo *stubUserRepo) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(&stubProductRepo{}),
		UserRepo:  userRepo,
		JWTSecret: testJWTSecret,
	})
	return app
}

// Las rutas de sesión publicadas a los clientes: el login con Google vive en
// /users/auth/google y la rotación de contraseña en /users/me/change-password.
func TestRouter_LoginGoogleEnSuRuta(t *testing.T) {
	app := buildRouterApp(&stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/users/auth/google", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Sin token de Google en el body: 400 de validación, no 404 de ruta
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_CambioDePasswordEnSuRuta(t *testing.T) {
	app := buildRouterApp(&stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/users/me/change-password", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Sin sesión el guard corta con 401; un 404 significaría ruta sin registrar
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// La lectura del catálogo es mixta: pública sin token, y con token válido la
// cuenta viaja en el contexto sin exigir sesión.
func TestRouter_CatalogoLecturaPublica(t *testing.T) {
	app := buildRouterApp(&stubUserRepo{account: activeAccount(entity.RoleCustomer)})

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CatalogoConTokenTambienResponde(t *testing.T) {
	app := buildRouterApp(&stubUserRepo{account: activeAccount(entity.RoleCustomer)})

	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	req.Header.Set("Authorization", tokenFor(t, entity.RoleCustomer, testExpDays))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
