package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/MsRupa/vidlook-app/internal/admission"
	"github.com/MsRupa/vidlook-app/internal/config"
	"github.com/MsRupa/vidlook-app/internal/db"
	"github.com/MsRupa/vidlook-app/internal/handler"
	"github.com/MsRupa/vidlook-app/internal/metrics"
	"github.com/MsRupa/vidlook-app/internal/middleware"
	"github.com/MsRupa/vidlook-app/internal/repository"
	"github.com/MsRupa/vidlook-app/internal/router"
	"github.com/MsRupa/vidlook-app/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		middleware.InitLogger("info", "vidlook-api")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	middleware.InitLogger(cfg.LogLevel, "vidlook-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	metrics.Register(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	gate := admission.New(gateConfig(cfg), gateStore(cfg, cache))

	ledgerRepo := repository.NewLedgerRepo(pool)
	accountRepo := repository.NewAccountRepo(pool)
	conversionRepo := repository.NewConversionRepo(pool)

	rewardSvc := service.NewRewardService(ledgerRepo, cfg.Reward.LedgerTimeout)
	accountSvc := service.NewAccountService(accountRepo, ledgerRepo)
	conversionSvc := service.NewConversionService(conversionRepo)
	feedSvc := service.NewFeedService(service.NewCuratedSource(), cache, cfg.Feed.SponsoredVideoID)

	auditor := service.NewAuditWorker(ledgerRepo, cfg.Reward.AuditInterval)
	go auditor.Start(ctx)

	app := fiber.New(middleware.WithTrustedProxies(fiber.Config{
		AppName:      "VidLook API",
		ServerHeader: "VidLook",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}, cfg.TrustedProxies))

	router.Setup(app, &router.Handlers{
		Health:     handler.NewHealthHandler(pool, handler.RedisPinger{Client: cache.Client()}),
		Watch:      handler.NewWatchHandler(rewardSvc),
		Account:    handler.NewAccountHandler(accountSvc),
		Conversion: handler.NewConversionHandler(conversionSvc),
		Feed:       handler.NewFeedHandler(feedSvc),
	}, gate, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("VidLook backend starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

func gateConfig(cfg *config.Config) admission.Config {
	gc := admission.DefaultConfig()
	if len(cfg.Admission.AllowedOrigins) > 0 {
		gc.AllowedOrigins = cfg.Admission.AllowedOrigins
	}
	gc.LenientOrigin = cfg.Admission.OriginPolicy == config.OriginPolicyLenient
	gc.BlockDesktopAPI = cfg.Admission.BlockDesktopAPI
	gc.APILimit = cfg.Admission.APIRateLimit
	gc.PageLimit = cfg.Admission.PageRateLimit
	return gc
}

// gateStore shares gate state through Redis when configured and reachable.
func gateStore(cfg *config.Config, cache *service.CacheService) admission.Store {
	if cfg.Admission.Store == config.GateStoreRedis {
		if rdb := cache.Client(); rdb != nil {
			log.Info().Msg("admission: using redis store")
			return admission.NewRedisStore(rdb)
		}
		log.Warn().Msg("admission: redis store requested but redis is unavailable, using memory")
	}
	return admission.NewMemoryStore()
}
