package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/internal/assistant"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/metrics"
	"storefront/internal/repos"
	"storefront/internal/services"
)

// openStore picks the record store backend. The returned func releases it.
func openStore(cfg config.Config) (repos.KV, func() error, error) {
	switch cfg.DBDriver {
	case "memory":
		return repos.NewMemKV(), func() error { return nil }, nil
	default:
		db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return repos.NewSQLKV(db), db.Close, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	zl, err := applog.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("[log] %v", err)
	}
	defer func() { _ = zl.Sync() }()
	applog.SetLogger(zl)

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		zl.Fatal("store.open", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer func() { _ = closeStore() }()

	reg, m := metrics.NewRegistry()

	// Repos
	userRepo, err := repos.NewUserRepo(kv, repos.BcryptHasher{Cost: cfg.BcryptCost})
	if err != nil {
		zl.Fatal("users.init", zap.Error(err))
	}
	prodRepo := repos.NewProductRepo(kv, cfg.CatalogLatency)
	orderRepo := repos.NewOrderRepo(kv)

	// Services
	carts := services.NewCartService(kv, m)
	sessions := services.NewSessionService(kv, carts)
	authSvc := &services.AuthService{Users: userRepo, Sessions: sessions, Latency: cfg.AuthLatency}
	sessions.Subscribe(func(sid string, u *domain.User) {
		if u == nil {
			applog.Info(nil, "session.logout", map[string]any{"sid": sid})
			return
		}
		applog.Info(nil, "session.login", map[string]any{"sid": sid, "user_id": u.ID})
	})

	asst := assistant.Open(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout, m)

	deps := handlers.NewDeps(handlers.Services{
		Catalog:   services.NewCatalogService(prodRepo),
		Carts:     carts,
		Auth:      authSvc,
		Orders:    services.NewOrderService(carts, sessions, orderRepo, m),
		Stats:     services.NewStatsService(orderRepo, prodRepo),
		Assistant: asst,
	})

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachUser(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/healthz" || strings.HasPrefix(p, "/metrics")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(handlers.CSRF())

	// Health & metrics
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.Mount(app, deps)

	go func() {
		zl.Info("starting storefront", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("shutdown error", zap.Error(err))
	}
}
