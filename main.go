package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"thumbcraft/config"
	"thumbcraft/handlers"
	"thumbcraft/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Configuration loaded: %s", cfg)

	ctx := context.Background()

	// Gemini gateway
	gateway, err := services.NewGeminiGateway(ctx, cfg.GeminiAPIKey, cfg.TextModel, cfg.ImageModel, cfg.EditModel)
	if err != nil {
		log.Fatalf("Failed to create Gemini gateway: %v", err)
	}

	// Workspace service with idle-session sweeping
	workspaces := services.NewWorkspaceService(gateway, cfg.WorkspaceTTL)
	workspaces.StartJanitor(ctx, cfg.JanitorInterval)

	// Create Gin router
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Initialize workspace handler
	workspaceHandler := handlers.NewWorkspaceHandler(cfg, workspaces)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/workspace", workspaceHandler.Create)
		api.GET("/workspace/:id", workspaceHandler.GetState)
		api.POST("/workspace/:id/source", workspaceHandler.UploadSource)
		api.DELETE("/workspace/:id/source", workspaceHandler.ClearSource)
		api.POST("/workspace/:id/generate", workspaceHandler.Generate)
		api.POST("/workspace/:id/thumbnail/prompt", workspaceHandler.UpdatePrompt)
		api.POST("/workspace/:id/thumbnail/regenerate", workspaceHandler.Regenerate)
		api.POST("/workspace/:id/thumbnail/edit", workspaceHandler.Edit)
		api.GET("/workspace/:id/thumbnail/download", workspaceHandler.Download)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
