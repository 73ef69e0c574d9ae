package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/dto"
)

// HealthHandler GET /health. Informa qué adaptadores están activos.
func HealthHandler(storage, queue string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Storage: storage, Queue: queue})
	}
}
