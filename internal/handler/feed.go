package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/service"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Feed handles GET /api/videos/feed?region=US&page=1&limit=10
func (h *FeedHandler) Feed(c fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", service.DefaultFeedLimit)

	resp, err := h.svc.Feed(c.Context(), c.Query("region"), page, limit)
	if err != nil {
		return writeServiceError(c, err, "Failed to load feed")
	}
	return c.JSON(resp)
}

// Search handles GET /api/videos/search?q=...&region=US
func (h *FeedHandler) Search(c fiber.Ctx) error {
	resp, err := h.svc.Search(c.Context(), c.Query("q"), c.Query("region"))
	if err != nil {
		return writeServiceError(c, err, "Failed to search videos")
	}
	return c.JSON(resp)
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
