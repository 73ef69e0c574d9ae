package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP + ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		status, code = fiber.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrSessionRequired):
		status, code = fiber.StatusUnauthorized, "SESSION_REQUIRED"
	case errors.Is(err, domain.ErrImportInProgress):
		status, code = fiber.StatusConflict, "IMPORT_IN_PROGRESS"
	case errors.Is(err, domain.ErrInvalidClient):
		status, code = fiber.StatusUnprocessableEntity, "INVALID_DATA"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
