package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/poyntloop/rewards-admin-service/internal/api"
	"github.com/poyntloop/rewards-admin-service/internal/catalog"
	"github.com/poyntloop/rewards-admin-service/internal/db"
	"github.com/poyntloop/rewards-admin-service/internal/events"
	"github.com/poyntloop/rewards-admin-service/internal/logging"
	"github.com/poyntloop/rewards-admin-service/internal/providers"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Ensure all log output goes to stdout so the platform captures it
	log.SetOutput(os.Stdout)

	log.Printf("Rewards Admin Service starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.NewDatabase()
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()
	}

	letters := catalog.NewSourceLetters(database, sourceTTLFromEnv())

	adapters := providers.FromEnv()
	if len(adapters) == 0 {
		log.Println("[WARN] No provider credentials configured; catalog endpoints will 404")
	}

	publisher := events.FromEnv()
	defer publisher.Close()

	handler := api.NewHandler(database, adapters, letters, publisher)

	router := setupRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Set up graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Serve uploaded reward images for local development
	router.Static("/uploads", "./uploads")

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.Use(api.AuthMiddleware())

		read := v1.Group("")
		read.Use(api.RequirePermission("rewards:read"))
		{
			read.GET("/catalog", handler.GetCombinedCatalog)
			read.GET("/catalog/:provider", handler.GetProviderCatalog)
			read.GET("/rewards", handler.GetGroupedRewards)
		}

		write := v1.Group("")
		write.Use(api.RequirePermission("rewards:write"))
		{
			write.POST("/rewards/enable", handler.EnableRewards)
			write.POST("/rewards/disable", handler.DisableRewards)
			write.POST("/rewards/:id/image", handler.UploadRewardImage)

			write.GET("/providers", handler.GetProviders)
			write.POST("/providers", handler.CreateProvider)
			write.PUT("/providers/:id", handler.UpdateProvider)
			write.DELETE("/providers/:id", handler.DeleteProvider)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "rewards-admin-service",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

func sourceTTLFromEnv() time.Duration {
	raw := os.Getenv("SOURCE_CACHE_TTL_SECONDS")
	if raw == "" {
		return catalog.DefaultSourceTTL
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("Invalid SOURCE_CACHE_TTL_SECONDS value: %s, using default", raw)
		return catalog.DefaultSourceTTL
	}
	return time.Duration(secs) * time.Second
}

// corsMiddleware adds CORS headers to allow cross-origin requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
