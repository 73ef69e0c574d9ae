package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/dto"
)

// sessionChecker contrato mínimo para verificar el flag de sesión.
// Lo implementa *auth.SessionUseCase.
type sessionChecker interface {
	IsActive(ctx context.Context) (bool, error)
}

// RequireSession exige el flag de sesión persistido. Debe usarse DESPUÉS de AuthMiddleware:
// un token válido deja de servir en cuanto se hace logout.
//
//   - 401 Unauthorized → no hay sesión activa.
//   - 503 Service Unavailable → fallo al leer el almacén de sesión.
func RequireSession(checker sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		active, err := checker.IsActive(c.Context())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SESSION_CHECK_FAILED",
				Message: "no se pudo verificar la sesión, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "SESSION_REQUIRED",
				Message: "sesión no iniciada",
			})
		}
		return c.Next()
	}
}
