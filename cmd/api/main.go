// @title           Nexus Project API
// @version         1.0
// @description     멀티 테넌트 프로젝트 관리 API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "nexus-project-api/docs" // Swagger docs import

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/config"
	"nexus-project-api/internal/database"
	"nexus-project-api/internal/job"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/middleware"
	"nexus-project-api/internal/repository"
	"nexus-project-api/internal/router"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Nexus Project API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("auth_api_url", cfg.AuthAPI.BaseURL),
	)

	// Initialize database
	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	database.RegisterMetricsCallbacks(db, m)
	statsDone := database.StartDBStatsCollector(db, m)
	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()
	logger.Info("Metrics initialized")

	// Initialize Redis (optional: unread cache and realtime stream)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, realtime notifications disabled", zap.Error(err))
			redisClient = nil
		}
	} else {
		logger.Warn("Redis not configured, realtime notifications disabled")
	}

	// Initialize S3 client; the interface stays nil when storage is disabled
	var s3Client client.S3ClientInterface
	if cfg.S3.Enabled() {
		c, err := client.NewS3Client(context.Background(), &cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, attachment features disabled", zap.Error(err))
		} else {
			s3Client = c
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, attachment features disabled")
	}

	// Token validation goes through auth-service when configured
	var authClient middleware.TokenValidator
	if cfg.AuthAPI.BaseURL != "" {
		authClient = client.NewAuthClient(cfg.AuthAPI.BaseURL, cfg.AuthAPI.Timeout, logger, m)
		logger.Info("Auth client initialized", zap.String("auth_api_url", cfg.AuthAPI.BaseURL))
	}

	var notificationClient client.NotificationClient
	if cfg.Notification.WebhookURL != "" {
		notificationClient = client.NewNotificationClient(cfg.Notification.WebhookURL, cfg.Notification.APIKey, cfg.Notification.Timeout, logger, m)
	}

	if cfg.App.SystemActor() == uuid.Nil {
		logger.Warn("app.system_actor_id not set, review comments on finished tasks are disabled")
	}

	// Background jobs
	store := repository.NewStore(db)
	scheduler := job.NewScheduler(logger)
	cleanupJob := job.NewCleanupJob(store.Attachments(), s3Client, logger)
	if err := scheduler.Register("attachment-cleanup", cfg.Jobs.AttachmentCleanupSchedule, cleanupJob.Run); err != nil {
		logger.Fatal("Failed to schedule attachment cleanup", zap.Error(err))
	}
	notificationCleanupJob := job.NewNotificationCleanupJob(store.Notifications(), cfg.App.NotificationRetentionDays, logger)
	if err := scheduler.Register("notification-cleanup", cfg.Jobs.NotificationCleanupSchedule, notificationCleanupJob.Run); err != nil {
		logger.Fatal("Failed to schedule notification cleanup", zap.Error(err))
	}
	scheduler.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:                 db,
		Redis:              redisClient,
		Logger:             logger,
		JWTSecret:          cfg.JWT.Secret,
		AuthClient:         authClient,
		BasePath:           cfg.Server.BasePath,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		Metrics:            m,
		S3Client:           s3Client,
		NotificationClient: notificationClient,
		Mailer:             client.NewLogMailer(logger),
		App:                cfg.App,
		UnreadCountTTL:     cfg.Redis.UnreadCountTTL,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:     r,
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout would cut long-lived websocket streams; handlers set their own deadlines
	}

	// Start server in goroutine
	go func() {
		logger.Info("Nexus Project API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	scheduler.Stop()
	collector.Stop()
	close(statsDone)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
