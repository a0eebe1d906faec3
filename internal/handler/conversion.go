package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/middleware"
	"github.com/MsRupa/vidlook-app/internal/model"
	"github.com/MsRupa/vidlook-app/internal/service"
)

type ConversionHandler struct {
	svc *service.ConversionService
}

func NewConversionHandler(svc *service.ConversionService) *ConversionHandler {
	return &ConversionHandler{svc: svc}
}

// Convert handles POST /api/convert
func (h *ConversionHandler) Convert(c fiber.Ctx) error {
	var req model.ConvertRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid JSON body")
	}
	accountID, errMsg := middleware.ValidateAccountID(req.AccountID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.AccountID = accountID

	resp, err := h.svc.Convert(c.Context(), req)
	if err != nil {
		return writeServiceError(c, err, "Failed to convert tokens")
	}
	return c.JSON(resp)
}

// List handles GET /api/conversions/:accountId
func (h *ConversionHandler) List(c fiber.Ctx) error {
	accountID, errMsg := middleware.ValidateAccountID(c.Params("accountId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	conversions, err := h.svc.List(c.Context(), accountID)
	if err != nil {
		return writeServiceError(c, err, "Failed to load conversions")
	}
	if conversions == nil {
		conversions = []model.Conversion{}
	}
	return c.JSON(conversions)
}
