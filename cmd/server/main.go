package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/consent"
	"github.com/perfectbrow/consent-api/internal/consentform"
	"github.com/perfectbrow/consent-api/internal/customer"
	"github.com/perfectbrow/consent-api/internal/notification"
	"github.com/perfectbrow/consent-api/internal/system/config"
	"github.com/perfectbrow/consent-api/internal/system/constants"
	"github.com/perfectbrow/consent-api/internal/system/database"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/log"
	"github.com/perfectbrow/consent-api/internal/system/middleware"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/verification"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load configuration
	// Priority: CONFIG_PATH env var > repository/conf/deployment.yaml > cmd/server/repository/conf/deployment.yaml
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.GetLogger().Fatal("Failed to load configuration", log.Error(err))
	}

	log.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Server"))

	logger.Info("Starting Consent API server...",
		log.String("version", version),
		log.String("build_date", buildDate),
	)

	// Initialize database
	db, err := database.Initialize(&cfg.Database.Consent)
	if err != nil {
		logger.Fatal("Failed to initialize database", log.Error(err))
	}

	healthCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(healthCtx); err != nil {
		logger.Fatal("Database health check failed", log.Error(err))
	}

	// Initialize stores
	provider.InitDBProvider(db, cfg.Database.Consent.Type)
	dbClient, err := provider.GetDBProvider().GetConsentDBClient()
	if err != nil {
		logger.Fatal("Failed to obtain consent DB client", log.Error(err))
	}
	registry := stores.NewStoreRegistry(
		dbClient,
		consentform.NewStore(dbClient),
		customer.NewStore(dbClient),
		verification.NewStore(dbClient),
		consent.NewStore(dbClient),
	)

	// Initialize the notification gateway
	sender := notification.NewSMTPSender(cfg.Email)
	notifier := notification.NewNotificationService(sender, cfg.Email)

	// Setup router
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	if cfg.CORS.Enabled {
		engine.Use(middleware.CORSMiddleware(cfg.CORS))
	}

	engine.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	// Register workflow modules. Customer matching comes first so the
	// verification module can reuse its service for submission-time matching.
	api := engine.Group(constants.APIBasePath)
	consentform.Initialize(api, registry)
	customerService := customer.Initialize(api, registry)
	verification.Initialize(api, registry, customerService, notifier, cfg.Consent)
	consent.Initialize(api, registry)

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		logger.Info("Starting HTTP server...",
			log.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", log.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", log.Error(err))
	}

	if err := provider.GetDBProviderCloser().Close(); err != nil {
		logger.Error("Failed to close database connections", log.Error(err))
	}

	logger.Info("Server exited gracefully")
}
