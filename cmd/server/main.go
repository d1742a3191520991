package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/promptvault/promptvault/internal/config"
	"github.com/promptvault/promptvault/internal/database"
	"github.com/promptvault/promptvault/internal/export"
	"github.com/promptvault/promptvault/internal/handler"
	"github.com/promptvault/promptvault/internal/middleware"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/internal/service"
	"github.com/promptvault/promptvault/pkg/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	promptRepo := repository.NewPromptRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	promptService := service.NewPromptService(promptRepo, service.NewKeywordSuggester())
	communityService := service.NewCommunityService(promptRepo)
	adminService := service.NewAdminService(userRepo, promptRepo)
	exportService := service.NewExportService(promptRepo,
		export.NewNotionExporter(cfg.NotionAPIKey, cfg.NotionDatabaseID))

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	promptHandler := handler.NewPromptHandler(promptService)
	communityHandler := handler.NewCommunityHandler(communityService)
	adminHandler := handler.NewAdminHandler(adminService)
	exportHandler := handler.NewExportHandler(exportService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.IsProduction()))
	router.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Public routes
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/community/public", middleware.OptionalAuth(cfg.JWTSecret), communityHandler.ListPublic)

	// Protected routes (require JWT)
	protected := router.Group("/")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		protected.GET("/prompts", promptHandler.List)
		protected.POST("/prompts", promptHandler.Create)
		protected.GET("/prompts/:id", promptHandler.Get)
		protected.PUT("/prompts/:id", promptHandler.Update)
		protected.DELETE("/prompts/:id", promptHandler.Delete)

		protected.POST("/community/:id/publish", communityHandler.Publish)
		protected.POST("/community/:id/unpublish", communityHandler.Unpublish)
		protected.POST("/community/:id/like", communityHandler.Like)
		protected.POST("/community/:id/unlike", communityHandler.Unlike)

		protected.POST("/export/json", exportHandler.JSON)
		protected.POST("/export/pdf", exportHandler.PDF)
		protected.POST("/export/notion", exportHandler.Notion)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/users/summary", adminHandler.UsersSummary)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
