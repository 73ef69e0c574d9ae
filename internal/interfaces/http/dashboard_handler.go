package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/financebi-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de la cartera.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (kpis, status_distribution, monthly_overdue,
// critical_clients[5]). No requiere parámetros.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
