package handler

import (
	"net/http"

	"gift-registry-service/internal/dto"
	"gift-registry-service/internal/service"

	"github.com/labstack/echo/v4"
)

type GiftHandler struct {
	giftService service.GiftService
}

func NewGiftHandler(giftService service.GiftService) *GiftHandler {
	return &GiftHandler{
		giftService: giftService,
	}
}

func (h *GiftHandler) ListGifts(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.giftService.List(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"gifts":   items,
	})
}

func (h *GiftHandler) CreateGift(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateGiftRequest
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

	item, err := h.giftService.Create(ctx, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"gift":    item,
	})
}
