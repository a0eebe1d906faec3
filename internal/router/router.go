package router

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/MsRupa/vidlook-app/internal/handler"
	"github.com/MsRupa/vidlook-app/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Watch      *handler.WatchHandler
	Account    *handler.AccountHandler
	Conversion *handler.ConversionHandler
	Feed       *handler.FeedHandler
}

// Setup configures the middleware stack and all routes on the given Fiber app.
// The admission gate runs after CORS so that its rejections still carry CORS
// headers.
func Setup(app *fiber.App, h *Handlers, gate middleware.Admitter, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewMetrics())
	app.Use(middleware.NewAdmission(gate))

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	app.Get("/", handler.Index)
	app.Get("/api", handler.APIStatus)

	api := app.Group("/api")

	// Accounts
	api.Post("/users/connect", h.Account.Connect)
	api.Get("/users/:walletAddress", h.Account.GetByWallet)
	api.Get("/history/:accountId", h.Account.History)
	api.Get("/stats/:accountId", h.Account.Stats)

	// Conversions
	api.Post("/convert", h.Conversion.Convert)
	api.Get("/conversions/:accountId", h.Conversion.List)

	// Videos
	api.Get("/videos/feed", h.Feed.Feed)
	api.Get("/videos/search", h.Feed.Search)

	// Rewards
	api.Post("/watch/record", h.Watch.Record)

	app.Use(func(c fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return handler.NotFound(c)
		}
		return c.SendStatus(fiber.StatusNotFound)
	})
}
