package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/clients"
	"github.com/jhoicas/financebi-api/internal/application/dto"
)

// ClientHandler maneja la vista de clientes.
type ClientHandler struct {
	uc *clients.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// List GET /api/clients?search=&status=all|current|delinquent
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var in dto.ClientListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
