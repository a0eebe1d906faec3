package middleware

import (
	"context"
	_ "embed"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/MsRupa/vidlook-app/internal/admission"
	"github.com/MsRupa/vidlook-app/internal/metrics"
)

//go:embed desktop.html
var desktopPage []byte

const desktopCacheControl = "public, max-age=86400, s-maxage=86400"

// Admitter decides whether a request may proceed.
type Admitter interface {
	Admit(ctx context.Context, r admission.Request) admission.Decision
}

// NewAdmission runs every request through the gate and renders its
// rejections. Admitted api requests carry the rate window headers.
func NewAdmission(gate Admitter) fiber.Handler {
	return func(c fiber.Ctx) error {
		d := gate.Admit(c.Context(), admission.Request{
			IP:        ClientIP(c),
			UserAgent: c.Get(fiber.HeaderUserAgent),
			Path:      c.Path(),
			Origin:    c.Get(fiber.HeaderOrigin),
			Referer:   c.Get(fiber.HeaderReferer),
		})

		if d.Class != admission.ClassExempt {
			metrics.AdmissionDecisions.WithLabelValues(string(d.Class), verdictLabel(d.Verdict), reasonLabel(d.Reason)).Inc()
		}

		switch d.Verdict {
		case admission.Substitute:
			c.Set(fiber.HeaderCacheControl, desktopCacheControl)
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Status(fiber.StatusOK).Send(desktopPage)

		case admission.Reject:
			if d.Limit > 0 {
				setRateHeaders(c, d)
			}
			if d.RetryAfter > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(d.RetryAfter.Seconds())))
			}
			return ErrorResponse(c, d.Status, d.Reason, d.Message)
		}

		if d.Class == admission.ClassAPI && d.Limit > 0 {
			setRateHeaders(c, d)
		}
		return c.Next()
	}
}

func setRateHeaders(c fiber.Ctx, d admission.Decision) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))
	if !d.ResetAt.IsZero() {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	}
}

func verdictLabel(v admission.Verdict) string {
	switch v {
	case admission.Reject:
		return "reject"
	case admission.Substitute:
		return "substitute"
	default:
		return "allow"
	}
}

func reasonLabel(reason string) string {
	if reason == "" {
		return "none"
	}
	return reason
}
