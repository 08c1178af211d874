package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sprintsync/sprintsync-api/internal/auth"
	"github.com/sprintsync/sprintsync-api/internal/config"
	"github.com/sprintsync/sprintsync-api/internal/events"
	"github.com/sprintsync/sprintsync-api/internal/logger"
	"github.com/sprintsync/sprintsync-api/internal/monitor"
	"github.com/sprintsync/sprintsync-api/internal/server"
	"github.com/sprintsync/sprintsync-api/internal/storage/pg"
	"github.com/sprintsync/sprintsync-api/internal/suggestion"
	"github.com/sprintsync/sprintsync-api/internal/task"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.AppEnv))
	log := appLogger.WithComponent("main")

	log.Info("setting gin mode", slog.String("mode", cfg.GinMode))
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize database.
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := pg.InitDatabase(dbCtx, cfg.DatabaseURL, pg.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTime) * time.Minute,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetime) * time.Minute,
	})
	cancel()
	if err != nil {
		log.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("database connected, migrations applied")

	// Events are optional.
	var publisher events.Publisher = events.Noop{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.Connect(cfg.NatsURL, appLogger)
		if err != nil {
			log.Warn("nats unavailable, events disabled", slog.String("error", err.Error()))
		} else {
			publisher = natsPublisher
		}
	}
	emitter := events.NewEmitter(publisher, appLogger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := auth.NewService(db.Queries, tokens, appLogger, auth.DefaultBcryptCost)
	taskService := task.NewService(db.Queries, appLogger)

	providers, err := suggestion.NewProviders(ctx, cfg, &http.Client{}, appLogger)
	if err != nil {
		log.Error("failed to initialize suggestion providers", slog.String("error", err.Error()))
		os.Exit(1)
	}
	suggestionService := suggestion.NewService(providers, appLogger, suggestion.NewMetrics(registry))
	log.Info("suggestion providers ready", slog.Any("providers", suggestionService.Providers()))

	memoryMonitor := monitor.NewMemoryMonitor(monitor.Options{
		Schedule:          cfg.MemoryMonitorSchedule,
		GrowthThresholdMB: cfg.MemoryGrowthThreshold,
		AlertThresholdMB:  cfg.MemoryAlertThresholdMB,
	}, appLogger)

	router := server.NewRouter(server.Deps{
		Config:            cfg,
		Logger:            appLogger,
		Database:          db,
		Memory:            memoryMonitor,
		Gatherer:          registry,
		Metrics:           server.NewHTTPMetrics(registry),
		AuthMiddleware:    auth.NewMiddleware(authService, appLogger),
		AuthHandler:       auth.NewHandler(authService, appLogger),
		TaskHandler:       task.NewHandler(taskService, emitter, appLogger),
		SuggestionHandler: suggestion.NewHandler(suggestionService, emitter, appLogger),
	})

	if cfg.MemoryMonitorEnabled {
		if err := memoryMonitor.Start(); err != nil {
			log.Error("failed to start memory monitor", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 server listening",
			slog.String("addr", srv.Addr),
			slog.String("environment", cfg.AppEnv),
			slog.String("health_url", "http://localhost:"+cfg.Port+"/health"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("🛑 shutting down server", slog.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	memoryMonitor.Stop()

	if err := publisher.Close(); err != nil {
		log.Warn("failed to close event publisher", slog.String("error", err.Error()))
	}

	if err := db.Close(); err != nil {
		log.Warn("failed to close database", slog.String("error", err.Error()))
	}

	log.Info("✅ server exited")
}
