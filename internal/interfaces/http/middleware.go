package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/Practicas-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger registra método, ruta, estado, latencia y usuario de cada petición
// y deja un sublogger con el request id en c.Locals.
func RequestLogger(log *logger.Logger) fiber.Handler {
	base := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals("requestid").(string)
		l := base
		if reqID != "" {
			l = base.WithStr("request_id", reqID)
		}
		c.Locals(localLogger, l)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if re, ok := err.(*requestError); ok {
				status = re.status
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Info()
		if status >= 500 {
			ev = l.Error()
		} else if status >= 400 {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}

func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}

// LoginLimiter limita intentos de login por IP. storage nil usa memoria.
func LoginLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS",
				"Demasiados intentos de inicio de sesión. Intenta más tarde.")
		},
	})
}
