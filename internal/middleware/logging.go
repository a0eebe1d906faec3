package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MsRupa/vidlook-app/pkg/hash"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger zerolog.Logger

// InitLogger sets up structured JSON logging and installs it as the zerolog
// global logger. Level is parsed from the given string (e.g. "debug", "info").
func InitLogger(level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Logger()
	log.Logger = Logger
}

// sanitizePath replaces account ids and wallet addresses with placeholders
// so they are never written to logs or used as metric labels.
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := range parts {
		if i == 0 || parts[i] == "" {
			continue
		}
		switch parts[i-1] {
		case "users":
			if parts[i] != "connect" {
				parts[i] = ":walletAddress"
			}
		case "history", "conversions", "stats":
			parts[i] = ":accountId"
		}
	}
	return strings.Join(parts, "/")
}

// NewRequestLogger returns a Fiber middleware that logs each request as
// structured JSON via zerolog. Raw IPs are hashed.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := Logger.Info()
		if status >= 500 {
			evt = Logger.Error()
		} else if status >= 400 {
			evt = Logger.Warn()
		}

		evt.
			Str("method", c.Method()).
			Str("path", sanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hash.ShortHex(ClientIP(c), 12)).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}

// ClientIP returns the caller's address as resolved by Fiber. Forwarded
// headers count only when the peer is a trusted proxy (see
// WithTrustedProxies). The value is cloned because Fiber may back it with a
// reused header buffer and the gate keeps IPs as map keys.
func ClientIP(c fiber.Ctx) string {
	return strings.Clone(c.IP())
}

// WithTrustedProxies makes c.IP() read X-Forwarded-For, but only on requests
// whose peer address is one of proxies (IPs or CIDR ranges). With no proxies
// the socket address is always used.
func WithTrustedProxies(cfg fiber.Config, proxies []string) fiber.Config {
	if len(proxies) == 0 {
		return cfg
	}
	cfg.ProxyHeader = fiber.HeaderXForwardedFor
	cfg.TrustProxy = true
	cfg.TrustProxyConfig = fiber.TrustProxyConfig{Proxies: proxies}
	cfg.EnableIPValidation = true
	return cfg
}
