package handler

import (
	_ "embed"

	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/middleware"
)

//go:embed index.html
var indexPage []byte

// Index handles GET / with the mini app shell.
func Index(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexPage)
}

// APIStatus handles GET /api
func APIStatus(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "message": "VidLook API is running"})
}

// NotFound answers unknown /api paths with the JSON error envelope.
func NotFound(c fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Endpoint not found")
}
