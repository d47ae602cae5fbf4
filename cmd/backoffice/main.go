package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/altiplano/backoffice/internal/app"
	"github.com/altiplano/backoffice/internal/catalog"
	"github.com/altiplano/backoffice/internal/commerce/orders"
	"github.com/altiplano/backoffice/internal/commerce/sales"
	"github.com/altiplano/backoffice/internal/commerce/supply"
	"github.com/altiplano/backoffice/internal/gateway"
	"github.com/altiplano/backoffice/internal/notify"
	"github.com/altiplano/backoffice/internal/observability"
	"github.com/altiplano/backoffice/internal/shared"
	"github.com/altiplano/backoffice/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "backoffice_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	client := gateway.NewClient(cfg.APIBaseURL, cfg.ClientOrigin, gateway.WithRecorder(metrics))

	catalogService := catalog.NewService(client)
	ordersService := orders.NewService(client)
	salesService := sales.NewService(client)
	supplyService := supply.NewService(client)

	hub := notify.NewHub(logger)
	manager := notify.NewManager(logger, cfg.WSBaseURL, cfg.ClientOrigin, notify.NewPanelStore(), hub,
		notify.WithCardSink(hub), notify.WithEventCounter(metrics))
	manager.Start(ctx)
	defer manager.Stop()

	catalogHandler := catalog.NewHandler(logger, catalogService, templates, csrfManager)
	ordersHandler := orders.NewHandler(logger, ordersService, catalogService, templates, csrfManager, hub)
	salesHandler := sales.NewHandler(logger, salesService, catalogService, templates, csrfManager, hub)
	supplyHandler := supply.NewHandler(logger, supplyService, catalogService, templates, csrfManager, hub)
	notifyHandler := notify.NewHandler(logger, manager, hub, templates, csrfManager)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		CatalogHandler: catalogHandler,
		OrdersHandler:  ordersHandler,
		SalesHandler:   salesHandler,
		SupplyHandler:  supplyHandler,
		NotifyHandler:  notifyHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
