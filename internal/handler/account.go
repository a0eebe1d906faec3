package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/middleware"
	"github.com/MsRupa/vidlook-app/internal/model"
	"github.com/MsRupa/vidlook-app/internal/service"
)

type AccountHandler struct {
	svc *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Connect handles POST /api/users/connect
func (h *AccountHandler) Connect(c fiber.Ctx) error {
	var req model.ConnectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid JSON body")
	}
	if _, errMsg := middleware.ValidateWalletAddress(req.WalletAddress); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	acct, err := h.svc.Connect(c.Context(), req)
	if err != nil {
		return writeServiceError(c, err, "Failed to connect wallet")
	}
	return c.JSON(acct)
}

// GetByWallet handles GET /api/users/:walletAddress
func (h *AccountHandler) GetByWallet(c fiber.Ctx) error {
	wallet, errMsg := middleware.ValidateWalletAddress(c.Params("walletAddress"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	acct, err := h.svc.ByWallet(c.Context(), wallet)
	if err != nil {
		return writeServiceError(c, err, "Failed to lookup account")
	}
	return c.JSON(acct)
}

// History handles GET /api/history/:accountId
func (h *AccountHandler) History(c fiber.Ctx) error {
	accountID, errMsg := middleware.ValidateAccountID(c.Params("accountId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entries, err := h.svc.History(c.Context(), accountID)
	if err != nil {
		return writeServiceError(c, err, "Failed to load watch history")
	}
	if entries == nil {
		entries = []model.WatchEntry{}
	}
	return c.JSON(entries)
}

// Stats handles GET /api/stats/:accountId
func (h *AccountHandler) Stats(c fiber.Ctx) error {
	accountID, errMsg := middleware.ValidateAccountID(c.Params("accountId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	stats, err := h.svc.Stats(c.Context(), accountID)
	if err != nil {
		return writeServiceError(c, err, "Failed to load stats")
	}
	return c.JSON(stats)
}
