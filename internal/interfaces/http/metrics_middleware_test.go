package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cuando el handler retorna error, el ErrorHandler de fiber aún no ha escrito
// la respuesta al volver al middleware: el status de la métrica tiene que
// derivarse del error, no del buffer de respuesta.
func TestMetricsMiddleware_StatusFinalConError(t *testing.T) {
	app := fiber.New()
	app.Use(MetricsMiddleware())
	app.Get("/rompe", func(c *fiber.Ctx) error {
		return fiber.ErrServiceUnavailable
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/rompe", "503"))

	resp, err := app.Test(httptest.NewRequest("GET", "/rompe", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/rompe", "503"))
	assert.Equal(t, before+1, after, "la request fallida cuenta bajo su status real")
}

func TestMetricsMiddleware_StatusEscritoSinError(t *testing.T) {
	app := fiber.New()
	app.Use(MetricsMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ok", "204"))

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ok", "204"))
	assert.Equal(t, before+1, after)
}

// Un error que no es *fiber.Error termina como 500 en la etiqueta de status.
func TestMetricsMiddleware_ErrorGenericoEs500(t *testing.T) {
	app := fiber.New()
	app.Use(MetricsMiddleware())
	app.Get("/caos", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/caos", "500"))

	resp, err := app.Test(httptest.NewRequest("GET", "/caos", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/caos", "500"))
	assert.Equal(t, before+1, after)
}
