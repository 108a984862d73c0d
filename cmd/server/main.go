package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ourystd/kaherecode/internal/auth"
	"github.com/ourystd/kaherecode/internal/config"
	"github.com/ourystd/kaherecode/internal/handler"
	"github.com/ourystd/kaherecode/internal/infrastructure/database"
	"github.com/ourystd/kaherecode/internal/logger"
	"github.com/ourystd/kaherecode/internal/mailer"
	"github.com/ourystd/kaherecode/internal/media"
	"github.com/ourystd/kaherecode/internal/metrics"
	"github.com/ourystd/kaherecode/internal/middleware"
	"github.com/ourystd/kaherecode/internal/repository"
	"github.com/ourystd/kaherecode/internal/service"
	"github.com/ourystd/kaherecode/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	poolCfg := database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}

	// Apply pending schema migrations
	if err := database.MigrateUp(poolCfg, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool)
	tutorialRepo := repository.NewPostgresTutorialRepository(pool)
	tagRepo := repository.NewPostgresTagRepository(pool)

	// Initialize validator
	v := validator.NewValidator()

	// Initialize adapters
	mediaService, err := media.NewCloudinaryService(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryFolder,
	)
	if err != nil {
		logger.Fatal("Failed to create media service",
			slog.String("error", err.Error()))
	}

	mailService := mailer.NewSendGridMailer(
		cfg.SendGridAPIKey,
		cfg.MailFromEmail,
		cfg.MailFromName,
		cfg.BaseURL,
	)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	tutorialService := service.NewTutorialService(
		tutorialRepo,
		tagRepo,
		userRepo,
		mediaService,
		mailService,
		v,
		cfg.HomePageSize,
		cfg.MailWorkerPoolSize,
	)

	userService := service.NewUserService(
		userRepo,
		tutorialRepo,
		mailService,
		tokens,
		v,
	)

	// Initialize handlers
	tutorialHandler := handler.NewTutorialHandler(tutorialService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	router.GET("/", tutorialHandler.Index)
	router.GET("/tag/:label", tutorialHandler.ByTag)
	router.GET("/tutorial/:slug", tutorialHandler.Show)
	router.GET("/videos", tutorialHandler.Videos)
	router.POST("/register", userHandler.Register)
	router.GET("/confirm/:token", userHandler.ConfirmAccount)
	router.POST("/login", userHandler.Login)
	router.POST("/password-reset/request", userHandler.RequestPasswordReset)
	router.POST("/password-reset", userHandler.ResetPassword)

	// Authenticated routes
	authenticated := router.Group("", middleware.Auth(tokens))
	{
		tutorials := authenticated.Group("/tutorials")
		{
			tutorials.POST("/new", tutorialHandler.Create)
			tutorials.GET("/:uuid/edit", tutorialHandler.EditForm)
			tutorials.POST("/:uuid/edit", tutorialHandler.Update)
			tutorials.GET("/:uuid/preview", tutorialHandler.Preview)
			tutorials.POST("/:uuid/publish", tutorialHandler.Publish)
			tutorials.POST("/:uuid/delete", tutorialHandler.Delete)
		}

		authenticated.GET("/profile", userHandler.Profile)
		authenticated.POST("/profile/edit", userHandler.UpdateProfile)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Stop taking new work before draining pending notifications
	logger.Info("Closing tutorial service")
	tutorialService.Close()

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
