package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prayastok/stok-api/internal/application/auth"
	"github.com/prayastok/stok-api/internal/application/item"
	"github.com/prayastok/stok-api/internal/application/ledger"
	appreport "github.com/prayastok/stok-api/internal/application/report"
	"github.com/prayastok/stok-api/internal/infrastructure/cache"
	"github.com/prayastok/stok-api/internal/infrastructure/feed"
	infrapdf "github.com/prayastok/stok-api/internal/infrastructure/pdf"
	"github.com/prayastok/stok-api/internal/infrastructure/postgres"
	httpRouter "github.com/prayastok/stok-api/internal/interfaces/http"
	"github.com/prayastok/stok-api/pkg/config"
	"github.com/prayastok/stok-api/pkg/logger"
)

// notifier fans change signals into the live feed hub and drops the report
// cache when a change can move report numbers.
type notifier struct {
	hub   *feed.Hub
	cache cache.ReportCache
	log   *logger.Logger
}

func (n *notifier) Publish(partition string) {
	n.hub.Publish(partition)
	if partition == "sale" || partition == "items" {
		if err := n.cache.Invalidate(context.Background()); err != nil {
			n.log.Warn().Err(err).Msg("invalidate report cache")
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var reportCache cache.ReportCache = cache.NoopReportCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, report cache disabled")
		} else {
			reportCache = redisCache
			defer redisCache.Close()
		}
	}

	hub := feed.NewHub()
	notify := &notifier{hub: hub, cache: reportCache, log: log}

	ledgerUC := ledger.NewUseCase(txRunner, itemRepo, movementRepo, notify)
	itemUC := item.NewUseCase(itemRepo, txRunner, notify)
	reportUC := appreport.NewUseCase(itemRepo, movementRepo, reportCache)
	authUC := auth.NewUseCase(sessionRepo, auth.Config{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		Issuer:       cfg.JWT.Issuer,
		ExpMinutes:   cfg.JWT.Expiration,
	})
	pdfGenerator := infrapdf.NewReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stok API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ItemUC:    itemUC,
		LedgerUC:  ledgerUC,
		ReportUC:  reportUC,
		PDF:       pdfGenerator,
		Hub:       hub,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
