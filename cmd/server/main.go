package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promoai-api/api/routes"
	"promoai-api/internal/auth"
	"promoai-api/internal/common"
	"promoai-api/internal/config"
	"promoai-api/internal/database"
	"promoai-api/internal/events"
	"promoai-api/internal/generator"
	"promoai-api/internal/history"
	"promoai-api/internal/llm"
	"promoai-api/internal/mining"
	"promoai-api/internal/session"
	"promoai-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.Server.Environment)
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.SugaredLogger.Desugar()

	clock := common.NewRealClock()

	// Initialize the audit database when enabled. The service runs
	// without it; only the history trail is lost.
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		if err := history.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run history migrations", "error", err)
		}
	} else {
		logger.Info("Audit database disabled")
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	// Initialize services
	registry, err := llm.NewRegistry(cfg.LLM, zapLogger)
	if err != nil {
		logger.Fatal("Failed to initialize provider registry", "error", err)
	}
	logger.Info("LLM providers configured", "available", fmt.Sprintf("%v", registry.Available()))

	generatorService := generator.NewService(registry, eventBus, zapLogger, cfg.LLM)
	miningService := mining.NewService(cfg.Mining, eventBus, zapLogger)

	var historyService history.Service
	if db != nil {
		historyRepository := history.NewGormRepository(db, zapLogger)
		historyService, err = history.NewService(historyRepository, eventBus, zapLogger)
		if err != nil {
			logger.Fatal("Failed to initialize history service", "error", err)
		}
	}

	sessions := session.NewStore(cfg.Session, clock, zapLogger)
	sessions.StartCleanupLoop()

	authService := auth.NewService(cfg.Auth, cfg.Session, clock, zapLogger)
	if !authService.Enabled() {
		logger.Warn("Credential gate disabled; sessions open without authentication")
	}

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20
	routes.SetupRoutes(router, routes.Dependencies{
		DB:          db,
		Logger:      logger,
		Config:      cfg,
		AuthService: authService,
		Sessions:    sessions,
		Registry:    registry,
		Generator:   generatorService,
		Mining:      miningService,
		History:     historyService,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sessions.StopCleanupLoop()

	// Close event bus with timeout so pending audit writes can drain
	eventBusDone := make(chan struct{})
	go func() {
		if err := eventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
		close(eventBusDone)
	}()

	select {
	case <-eventBusDone:
		logger.Info("Event bus closed")
	case <-time.After(10 * time.Second):
		logger.Warn("Event bus shutdown timed out")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
