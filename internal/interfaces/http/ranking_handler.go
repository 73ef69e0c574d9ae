package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/financebi-api/internal/application/analytics"
	"github.com/jhoicas/financebi-api/internal/domain"
)

// RankingHandler ranking de riesgo y su exportación.
type RankingHandler struct {
	uc *appanalytics.RankingUseCase
}

// NewRankingHandler construye el handler.
func NewRankingHandler(uc *appanalytics.RankingUseCase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

// Get GET /api/ranking?top=3
func (h *RankingHandler) Get(c *fiber.Ctx) error {
	top, err := parseTop(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetRanking(c.Context(), top)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report GET /api/ranking/report?top=3 → application/pdf
func (h *RankingHandler) Report(c *fiber.Ctx) error {
	top, err := parseTop(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.GenerateReport(c.Context(), top)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="ranking-risco-%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(pdf)
}

// parseTop lee ?top=; ausente devuelve 0 (tamaño por defecto).
func parseTop(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("top"))
	if raw == "" {
		return 0, nil
	}
	top, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: top no numérico %q", domain.ErrInvalidInput, raw)
	}
	return top, nil
}
