package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/application/importer"
)

// ImportHandler recibe planillas y expone el estado de los trabajos.
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Upload godoc
// @Summary      Importar planilla de clientes
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  ".csv, .xlsx o .xls"
// @Success      202   {object}  dto.ImportJobDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo 'file' requerido"})
	}
	job, err := h.uc.Start(c.Context(), fh.Filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(job)
}

// GetJob GET /api/import/:id
func (h *ImportHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}
