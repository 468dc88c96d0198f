package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"localbookr-server/config"
	"localbookr-server/database"
	"localbookr-server/jobs"
	"localbookr-server/middleware"
	"localbookr-server/models"
	"localbookr-server/routes"
	"localbookr-server/services"
	ws "localbookr-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (migrations and schema feature detection included)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "LocalBookr server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Notification hub for live pushes
	hub := ws.NewHub()
	go hub.Run()
	services.SetNotificationHub(hub)

	// WebSocket endpoint (token in query, browsers cannot set upgrade headers)
	router.GET("/api/v1/ws/notifications", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		ws.ServeWebSocket(hub, c.Writer, c.Request, c.GetUint("user_id"), c.GetString("user_role"))
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)
		authRoutes.GET("/me", middleware.AuthMiddleware(), routes.GetCurrentUser)

		// Public catalog and provider search
		routes.RegisterServiceRoutes(api)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterBookingRoutes(protected)
			routes.RegisterNotificationRoutes(protected)

			providerPortal := protected.Group("")
			providerPortal.Use(middleware.RequireRole(models.RoleProvider))
			routes.RegisterProviderRoutes(providerPortal)

			admin := protected.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			routes.RegisterAdminRoutes(admin)
			routes.RegisterAdminBookingRoutes(admin)
			routes.RegisterAdminProviderRoutes(admin)
			routes.RegisterAdminServiceRoutes(admin)
		}
	}

	// Start background jobs
	autoAssignJob := jobs.NewAutoAssignJob()
	autoAssignJob.Start()
	defer autoAssignJob.Stop()

	// Daily cleanup of expired refresh tokens
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			jwtService := services.NewJWTService()
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
