package routes

import (
	"promoai-api/api/handlers"
	"promoai-api/api/middleware"
	"promoai-api/internal/auth"
	"promoai-api/internal/config"
	"promoai-api/internal/generator"
	"promoai-api/internal/history"
	"promoai-api/internal/llm"
	"promoai-api/internal/mining"
	"promoai-api/internal/session"
	"promoai-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies bundles everything the HTTP surface needs.
type Dependencies struct {
	DB          *gorm.DB
	Logger      *logger.Logger
	Config      *config.Config
	AuthService *auth.Service
	Sessions    *session.Store
	Registry    *llm.Registry
	Generator   generator.Service
	Mining      mining.Service
	History     history.Service
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Add middleware
	router.Use(middleware.RequestLogging(deps.Logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Sessions, deps.Config.LLM, deps.Logger)
	providersHandler := handlers.NewProvidersHandler(deps.Registry)
	generationHandler := handlers.NewGenerationHandler(deps.Generator, deps.Mining, deps.Sessions, deps.Logger)
	miningHandler := handlers.NewMiningHandler(deps.Mining, deps.Sessions, deps.Logger)
	exportHandler := handlers.NewExportHandler(deps.Mining, deps.Logger)

	sessionAuth := middleware.SessionAuth(deps.AuthService, deps.Sessions, deps.Logger)

	// Setup routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/providers", providersHandler.List)

		authed := v1.Group("")
		authed.Use(sessionAuth)
		{
			authed.POST("/auth/logout", authHandler.Logout)

			authed.POST("/models/generate", generationHandler.Generate)
			authed.POST("/models/refine", generationHandler.Refine)
			authed.POST("/models/petri-net", generationHandler.PetriNet)
			authed.GET("/models/current", generationHandler.Current)
			authed.POST("/models/reset", generationHandler.Reset)
			authed.POST("/models/import", generationHandler.Import)
			authed.GET("/models/export", exportHandler.Export)

			authed.POST("/logs/analyze", miningHandler.Analyze)

			// The audit trail needs a database, so the route only
			// exists when one is configured
			if deps.History != nil {
				historyHandler := handlers.NewHistoryHandler(deps.History, deps.Logger)
				authed.GET("/history", historyHandler.List)
			}
		}
	}

	// Root health check
	router.GET("/health", healthHandler.Check)
}
