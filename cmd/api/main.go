package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/perfectpest/pestcontrol-platform/internal/api/router"
	"github.com/perfectpest/pestcontrol-platform/internal/catalog"
	appconfig "github.com/perfectpest/pestcontrol-platform/internal/config"
	"github.com/perfectpest/pestcontrol-platform/internal/leads"
	"github.com/perfectpest/pestcontrol-platform/internal/notify"
	"github.com/perfectpest/pestcontrol-platform/internal/observability/metrics"
	"github.com/perfectpest/pestcontrol-platform/internal/settings"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting pestcontrol-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize repositories. Without MONGODB_URI the server runs on
	// in-memory stores, which is enough for local development.
	var (
		leadsRepo     leads.Repository
		catalogRepo   catalog.Repository
		settingsStore settings.Store
	)
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			logger.Error("failed to ping mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()

		db := client.Database(cfg.MongoDatabase)
		leadsRepo, err = leads.NewMongoRepository(ctx, db)
		if err != nil {
			logger.Error("failed to initialize leads repository", "error", err)
			os.Exit(1)
		}
		catalogRepo, err = catalog.NewMongoRepository(ctx, db)
		if err != nil {
			logger.Error("failed to initialize catalog repository", "error", err)
			os.Exit(1)
		}
		settingsStore = settings.NewMongoStore(db)
		logger.Info("connected to mongodb", "database", cfg.MongoDatabase)
	} else {
		logger.Warn("MONGODB_URI not set, using in-memory stores")
		leadsRepo = leads.NewInMemoryRepository()
		catalogRepo = catalog.NewInMemoryRepository()
		settingsStore = settings.NewInMemoryStore()
	}

	// Metrics and notification pipeline
	leadMetrics := metrics.NewLeadMetrics(nil)
	notifyService := notify.NewService(settingsStore, nil, leadMetrics, logger)
	dispatcher := notify.NewDispatcher(notifyService, cfg.NotifyTimeout, logger)

	// Initialize handlers
	leadsHandler := leads.NewHandler(leadsRepo, dispatcher, leadMetrics, logger)
	catalogHandler := catalog.NewHandler(catalogRepo, logger)
	settingsHandler := settings.NewHandler(settingsStore, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		CatalogHandler:     catalogHandler,
		SettingsHandler:    settingsHandler,
		AdminAPIToken:      cfg.AdminAPIToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     promhttp.Handler(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight notifications drain before the process exits.
	if err := dispatcher.Close(ctx); err != nil {
		logger.Warn("notification dispatcher did not drain in time", "error", err)
	}

	logger.Info("server stopped")
}
