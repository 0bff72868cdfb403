package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/luxe-fashion/storefront-api/pkg/logger"
)

// LoggerMiddleware registra cada request con campos estructurados: status
// final, método, path, IP y duración. Si hay una cuenta autenticada en el
// contexto (guard completo u opcional), agrega su id.
func LoggerMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := finalStatus(c, err)
		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("remote", c.IP()).
			Dur("duration", time.Since(start))
		if account := CurrentAccount(c); account != nil {
			evt.Str("account", account.ID)
		}
		evt.Msg("request")
		return err
	}
}
