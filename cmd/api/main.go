package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-registration/internal/api/http"
	"github.com/spec-kit/event-registration/internal/api/http/handlers"
	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/observability"
	"github.com/spec-kit/event-registration/internal/persistence"
	"github.com/spec-kit/event-registration/internal/service"
	"github.com/spec-kit/event-registration/internal/session"
	"github.com/spec-kit/event-registration/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		store session.Store
		redis *persistence.Redis
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		store, err = session.NewRedisStore(redis, cfg.Redis.KeyPrefix, cfg.Session.TTL())
		if err != nil {
			logger.Fatal("failed to init redis session store", zap.Error(err))
		}
	default:
		store = session.NewMemoryStore(cfg.Session.TTL())
	}
	logger.Info("session store ready", zap.String("backend", cfg.Session.Backend), zap.Duration("ttl", cfg.Session.TTL()))

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	registrations := service.NewRegistrationService(service.RegistrationDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Metrics: handlers.NewMetricsHandler(metrics),
		Registration: handlers.NewRegistrationHandler(registrations, renderer, handlers.SessionCookie{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL(),
			Secure: cfg.Session.SecureCookie,
		}),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
