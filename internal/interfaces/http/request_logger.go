package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger registra cada petición: método, ruta, status, latencia y cuenta (si hay token).
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// El ErrorHandler escribe la respuesta; así el status registrado es el final.
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())
		if id := GetAccountID(c); id != "" {
			ev.Str("account_id", id)
		}
		ev.Msg("request")
		return nil
	}
}
