package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger adapts a go-redis client. A nil client reports as disabled.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

type HealthHandler struct {
	ledger  Pinger
	cache   Pinger
	startAt time.Time
}

// NewHealthHandler builds the probes. cache may be nil when Redis is not
// configured.
func NewHealthHandler(ledger Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{
		ledger:  ledger,
		cache:   cache,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. The ledger is required; a Redis outage
// only degrades caching and the shared gate store.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	postgres := check(ctx, h.ledger)
	redisCheck := check(ctx, h.cache)

	overall := "healthy"
	status := fiber.StatusOK
	switch {
	case postgres["status"] != "up":
		overall = "unhealthy"
		status = fiber.StatusServiceUnavailable
	case redisCheck["status"] == "down":
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"postgres": postgres,
			"redis":    redisCheck,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func check(ctx context.Context, p Pinger) fiber.Map {
	if p == nil {
		return fiber.Map{"status": "disabled"}
	}
	if rp, ok := p.(RedisPinger); ok && rp.Client == nil {
		return fiber.Map{"status": "disabled"}
	}

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
