package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/auth"
	"github.com/jhoicas/financebi-api/internal/application/dto"
)

// SessionHandler expone el estado de la aplicación (sesión + vista activa).
type SessionHandler struct {
	uc *auth.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *auth.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Status GET /api/session. Público: sin sesión responde authenticated=false.
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Navigate PUT /api/session/view
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var in dto.NavigateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Navigate(c.Context(), in.View)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
