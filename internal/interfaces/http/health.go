package http

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck comprueba una dependencia externa (base de datos, Redis).
type HealthCheck func(ctx context.Context) error

// HealthHandler responde el estado del servicio.
type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler construye el handler.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := fiber.StatusOK
	deps := fiber.Map{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			requestLogger(c).Warn().Err(err).Str("check", name).Msg("health check fallido")
			deps[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{"status": state, "checks": deps})
}
