package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/mosquito-alert/internal/api/http"
	"github.com/spec-kit/mosquito-alert/internal/api/http/handlers"
	"github.com/spec-kit/mosquito-alert/internal/auth"
	"github.com/spec-kit/mosquito-alert/internal/config"
	"github.com/spec-kit/mosquito-alert/internal/events"
	"github.com/spec-kit/mosquito-alert/internal/observability"
	"github.com/spec-kit/mosquito-alert/internal/persistence"
	"github.com/spec-kit/mosquito-alert/internal/service"
	"github.com/spec-kit/mosquito-alert/internal/store"
	"github.com/spec-kit/mosquito-alert/internal/worker"
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

	sessionStorage, closeStorage, err := newSessionStorage(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init session storage", zap.Error(err))
	}
	defer closeStorage()

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authStore, err := store.NewAuthStore(ctx, store.AuthDependencies{
		Storage:    sessionStorage,
		Dispatcher: dispatcher,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		logger.Fatal("failed to init auth store", zap.Error(err))
	}

	reportStore := store.NewReportStore(store.ReportDependencies{
		Auth:       authStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if cfg.App.SeedDemoData {
		authStore.SeedDemoUser()
		reportStore.SeedDemoReports()
		logger.Info("seeded demo data")
	}

	notificationService := service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, authStore)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(authStore, tokenManager, service.NewQRCodeService()),
		Reports:        handlers.NewReportsHandler(reportStore, service.NewUploadService(cfg.Upload, logger), service.NewGeocoder(), service.NewExportService()),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newSessionStorage(cfg *config.Config, logger *zap.Logger) (store.SessionStorage, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisStore := persistence.NewRedisStore(cfg.Redis, logger)
		return redisStore, redisStore.Close, nil
	case config.SessionBackendFile:
		fileStore, err := persistence.NewFileStore(cfg.Session.FilePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, func() {}, nil
	default:
		return store.NewMemoryStorage(), func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
