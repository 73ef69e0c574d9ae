package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/auth"
	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc *auth.SessionUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.SessionUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			RecordLogin("failure")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "usuario o contraseña incorrectos"})
		}
		return respondError(c, err)
	}
	RecordLogin("success")
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.SessionDTO
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	out, err := h.uc.Logout(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
