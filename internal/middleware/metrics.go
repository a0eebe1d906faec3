package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/metrics"
)

// NewMetrics records request duration and in-flight count for Prometheus.
func NewMetrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings before c.Next(): Fiber
		// returns slices backed by the fasthttp buffer which handlers may reuse.
		endpoint := sanitizePath(string([]byte(c.Path())))
		method := string([]byte(c.Method()))

		metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		metrics.RequestsInFlight.Dec()
		metrics.RequestDuration.
			WithLabelValues(endpoint, method, strconv.Itoa(c.Response().StatusCode())).
			Observe(time.Since(start).Seconds())

		return err
	}
}
