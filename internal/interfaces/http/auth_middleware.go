package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/pkg/jwt"
)

// Locals keys para el operador y la sesión en Fiber.
const (
	LocalUsername  = "username"
	LocalSessionID = "session_id"
)

// AuthMiddleware valida el Bearer Token JWT y extrae Username y SessionID a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalSessionID, claims.SessionID)
		return c.Next()
	}
}

// GetUsername devuelve el operador del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetSessionID devuelve el id de sesión del token.
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}
