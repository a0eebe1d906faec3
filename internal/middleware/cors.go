package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const (
	corsAllowMethods  = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders  = "Content-Type, Authorization"
	corsExposeHeaders = "Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset"
)

// NewCORS stamps CORS headers on every response and answers preflight with
// an empty 200. corsOrigins is a comma-separated allow-list; "*" or empty
// allows any origin.
func NewCORS(corsOrigins string) fiber.Handler {
	var origins []string
	if corsOrigins != "" && corsOrigins != "*" {
		for _, o := range strings.Split(corsOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return func(c fiber.Ctx) error {
		allow := "*"
		if len(origins) > 0 {
			allow = ""
			if origin := c.Get(fiber.HeaderOrigin); slices.Contains(origins, origin) {
				allow = origin
			}
			c.Vary(fiber.HeaderOrigin)
		}
		if allow != "" {
			c.Set(fiber.HeaderAccessControlAllowOrigin, allow)
		}
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Set(fiber.HeaderAccessControlExposeHeaders, corsExposeHeaders)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}
