package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/model"
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed and within DB limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > model.MaxVideoIDLen {
		return "", fmt.Sprintf("videoId must be at most %d characters", model.MaxVideoIDLen)
	}
	if !model.ValidVideoID(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateAccountID checks that an account ID is a canonical UUID.
func ValidateAccountID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "accountId is required"
	}
	if !model.ValidAccountID(id) {
		return "", "accountId must be a valid UUID"
	}
	return strings.ToLower(id), ""
}

// ValidateWalletAddress checks a wallet address path or body value.
func ValidateWalletAddress(addr string) (string, string) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", "walletAddress is required"
	}
	if len(addr) > model.MaxWalletLen {
		return "", fmt.Sprintf("walletAddress must be at most %d characters", model.MaxWalletLen)
	}
	if !model.ValidWalletAddress(addr) {
		return "", "walletAddress contains invalid characters"
	}
	return addr, ""
}
