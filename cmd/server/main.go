package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/offerdesk/offer-platform/internal/config"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/handlers"
	"github.com/offerdesk/offer-platform/internal/middleware"
	"github.com/offerdesk/offer-platform/internal/pdf"
	"github.com/offerdesk/offer-platform/internal/services"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Offer Platform")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database schema up to date")

	// Initialize repositories
	adminRepo := database.NewAdminRepository(db)
	sessionRepo := database.NewAdminSessionRepository(db)
	employeeRepo := database.NewEmployeeRepository(db)
	offerRepo := database.NewOfferRepository(db)
	signatureRepo := database.NewSignatureRepository(db)
	termsRepo := database.NewTermsRepository(db)

	// Initialize services
	authService := services.NewAuthService(
		adminRepo,
		sessionRepo,
		cfg.Admin.Username,
		cfg.Admin.BootstrapPassword,
		cfg.Security.BcryptCost,
		cfg.Session.TTL,
	)
	offerService := services.NewOfferService(offerRepo)
	directoryService := services.NewDirectoryService(employeeRepo)
	signatureService := services.NewSignatureService(signatureRepo, employeeRepo)
	renderer := pdf.NewRenderer()

	// Clear out stale admin sessions from previous runs
	if deleted, err := sessionRepo.DeleteExpired(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to delete expired sessions")
	} else if deleted > 0 {
		logger.Infof("Deleted %d expired sessions", deleted)
	}

	// Initialize handlers
	sessionMaxAge := int(cfg.Session.TTL.Seconds())
	adminHandler := handlers.NewAdminHandler(
		authService,
		offerService,
		directoryService,
		termsRepo,
		cfg.Session.CookieName,
		cfg.Session.CookieSecure,
		sessionMaxAge,
		logger,
	)
	employeeHandler := handlers.NewEmployeeHandler(
		offerService,
		directoryService,
		signatureService,
		termsRepo,
		renderer,
		logger,
	)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.LoadHTMLGlob(cfg.Server.TemplateDir + "/*.html")

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Home redirects to the employee lookup page
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/employee")
	})

	// Admin surface
	admin := router.Group("/admin")
	{
		admin.GET("/login", adminHandler.ShowLogin)
		admin.POST("/login", adminHandler.Login)
		admin.GET("/logout", adminHandler.Logout)

		protected := admin.Group("")
		protected.Use(middleware.SessionAuth(authService, cfg.Session.CookieName))
		{
			protected.GET("", adminHandler.Dashboard)
			protected.GET("/offer/new", adminHandler.ShowOfferForm)
			protected.POST("/offer/new", adminHandler.CreateOffer)
			protected.POST("/offer/:id/publish", adminHandler.PublishOffer)
			protected.GET("/employees", adminHandler.ListEmployees)
			protected.POST("/employees/upsert", adminHandler.UpsertEmployee)
			protected.POST("/employees/:employee_code/generate-company-id", adminHandler.GenerateCompanyID)
			protected.GET("/terms", adminHandler.ShowTerms)
			protected.POST("/terms", adminHandler.UpdateTerms)
		}
	}

	// Employee surface: no authentication, employee code is the identifier
	employee := router.Group("/employee")
	{
		employee.GET("", employeeHandler.ShowLookup)
		employee.POST("/lookup", employeeHandler.Lookup)
		employee.GET("/offer/:id", employeeHandler.ViewOffer)
		employee.GET("/offer/:id/sign", employeeHandler.ShowSignForm)
		employee.POST("/offer/:id/sign", employeeHandler.Sign)
		employee.GET("/offer/:id/pdf", employeeHandler.OfferPDF)
		employee.GET("/employee-id/:file", employeeHandler.IDCardPDF)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		logger.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}).Info("Request completed")
	}
}

// healthCheckHandler returns the service and database status
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}
