package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/service"

	"github.com/labstack/echo/v4"
)

// respondError maps the service error taxonomy onto HTTP statuses. On the
// webhook route the 500 branch is what makes the provider redeliver.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidSignature):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyPaid):
		status = http.StatusConflict
	case errors.Is(err, service.ErrPaymentProvider):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		slog.ErrorContext(c.Request().Context(), "request failed",
			"path", c.Path(), "error", err)
	}

	return c.JSON(status, dto.ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}
