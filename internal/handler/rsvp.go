package handler

import (
	"net/http"

	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/service"

	"github.com/labstack/echo/v4"
)

type RSVPHandler struct {
	rsvpService service.RSVPService
}

func NewRSVPHandler(rsvpService service.RSVPService) *RSVPHandler {
	return &RSVPHandler{
		rsvpService: rsvpService,
	}
}

func (h *RSVPHandler) SubmitRSVP(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RSVPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Error:   "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := h.rsvpService.Submit(ctx, &req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *RSVPHandler) ListRSVPs(c echo.Context) error {
	ctx := c.Request().Context()

	rsvps, err := h.rsvpService.List(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"rsvps":   rsvps,
	})
}
