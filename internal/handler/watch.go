package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/middleware"
	"github.com/MsRupa/vidlook-app/internal/model"
	"github.com/MsRupa/vidlook-app/internal/service"
)

type WatchHandler struct {
	svc *service.RewardService
}

func NewWatchHandler(svc *service.RewardService) *WatchHandler {
	return &WatchHandler{svc: svc}
}

// Record handles POST /api/watch/record. Business-rule rejections are 200
// responses with zero tokens; only malformed input and ledger failures are
// errors.
func (h *WatchHandler) Record(c fiber.Ctx) error {
	var req model.WatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid JSON body")
	}

	accountID, errMsg := middleware.ValidateAccountID(req.AccountID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	videoID, errMsg := middleware.ValidateVideoID(req.VideoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.ClaimedSeconds == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "claimedSeconds is required")
	}
	req.AccountID, req.VideoID = accountID, videoID

	result, err := h.svc.RecordWatch(c.Context(), req)
	if err != nil {
		return writeServiceError(c, err, "Failed to record watch")
	}
	return c.JSON(result)
}

// writeServiceError maps domain errors onto the API error envelope.
func writeServiceError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, model.ErrInvalidAccountID),
		errors.Is(err, model.ErrInvalidVideoID),
		errors.Is(err, model.ErrInvalidWallet),
		errors.Is(err, model.ErrMissingClaim):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
	case errors.Is(err, model.ErrAccountNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Account not found")
	case errors.Is(err, model.ErrBelowMinimum), errors.Is(err, model.ErrInsufficientFunds):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_AMOUNT", err.Error())
	case errors.Is(err, model.ErrEmptyQuery):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
	case errors.Is(err, model.ErrSearchUnavailable):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "Video search is not available")
	case errors.Is(err, model.ErrLedgerUnavailable):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "LEDGER_UNAVAILABLE", "Ledger temporarily unavailable, please retry")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
