package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/config"
	"nexus-project-api/internal/handler"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/middleware"
	"nexus-project-api/internal/repository"
	"nexus-project-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	AuthClient     middleware.TokenValidator
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// S3Client must be a nil interface, not a typed nil, when storage is disabled
	S3Client           client.S3ClientInterface
	NotificationClient client.NotificationClient
	Mailer             client.Mailer
	App                config.AppConfig
	UnreadCountTTL     time.Duration
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint (root and under base path for ingress routing)
	metricsHandler := gin.WrapH(promhttp.Handler())
	r.GET("/metrics", metricsHandler)

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// Collaborators
	store := repository.NewStore(cfg.DB)
	bus := service.NewRedisNotificationBus(cfg.Redis, cfg.UnreadCountTTL, cfg.Logger)

	mailer := cfg.Mailer
	if mailer == nil {
		mailer = client.NewLogMailer(cfg.Logger)
	}
	dispatcher := service.NewNotificationDispatcher(bus, bus, cfg.NotificationClient, cfg.Metrics, cfg.Logger)

	// Initialize services
	userService := service.NewUserService(store, cfg.Logger)
	workspaceService := service.NewWorkspaceService(store, cfg.Metrics, cfg.Logger)
	invitationService := service.NewInvitationService(store, dispatcher, mailer, cfg.App.PublicBaseURL, cfg.BasePath, cfg.Metrics, cfg.Logger)
	customFieldService := service.NewCustomFieldService(store, cfg.Logger)
	projectService := service.NewProjectService(store, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(store, dispatcher, service.NewFieldRegistry(), cfg.S3Client, cfg.App.SystemActor(), cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(store, dispatcher, cfg.S3Client, cfg.App.AttachmentTTL, cfg.Metrics, cfg.Logger)
	timeLogService := service.NewTimeLogService(store, cfg.Metrics, cfg.Logger)
	notificationService := service.NewNotificationService(store, bus, cfg.App.NotificationsPageSize, cfg.Logger)
	dashboardService := service.NewDashboardService(store, cfg.Logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	customFieldHandler := handler.NewCustomFieldHandler(customFieldService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService, commentService, timeLogService)
	attachmentHandler := handler.NewAttachmentHandler(commentService)
	notificationHandler := handler.NewNotificationHandler(notificationService, bus, cfg.Logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// API routes group
	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", metricsHandler)
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth middleware: remote validation when the auth service is configured
	var validator middleware.TokenValidator = middleware.NewJWTValidator(cfg.JWTSecret)
	if cfg.AuthClient != nil {
		validator = cfg.AuthClient
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(validator))
	{
		users := authed.Group("/users")
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpsertMe)
		}

		authed.GET("/dashboard", dashboardHandler.GetDashboard)

		// ============================================================
		// Workspace routes
		// ============================================================
		workspaces := authed.Group("/workspaces")
		{
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.GET("/:slug", workspaceHandler.GetWorkspace)
			workspaces.GET("/:slug/members", workspaceHandler.ListMembers)
			workspaces.GET("/:slug/team", workspaceHandler.TeamDirectory)
			workspaces.GET("/:slug/roles", workspaceHandler.ListRoles)
			workspaces.POST("/:slug/roles", workspaceHandler.CreateRole)
			workspaces.POST("/:slug/invite", invitationHandler.SendInvitation)
			workspaces.GET("/:slug/custom-fields", customFieldHandler.ListCustomFields)
			workspaces.POST("/:slug/custom-fields", customFieldHandler.CreateCustomField)
			workspaces.POST("/:slug/projects", projectHandler.CreateProject)
		}

		authed.PUT("/memberships/:membershipId/role", workspaceHandler.UpdateMembershipRole)
		authed.GET("/invitations/accept/:token", invitationHandler.AcceptInvitation)

		// ============================================================
		// Project routes
		// ============================================================
		projects := authed.Group("/projects")
		{
			projects.GET("/:slug", projectHandler.GetProjectDetail)
			projects.GET("/:slug/activities", projectHandler.ListActivities)
			projects.GET("/:slug/gantt-data", projectHandler.GetGanttData)
			projects.GET("/:slug/reports", projectHandler.GetReports)
			projects.POST("/:slug/tasks", taskHandler.CreateTask)
		}

		// ============================================================
		// Task routes
		// ============================================================
		tasks := authed.Group("/tasks")
		{
			tasks.POST("/update-status", taskHandler.UpdateTaskStatus)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PUT("/:taskId", taskHandler.UpdateTask)
			tasks.POST("/:taskId/comments", taskHandler.AddComment)
			tasks.POST("/:taskId/toggle-time", taskHandler.ToggleTime)
		}

		authed.POST("/attachments/:attachmentId/confirm", attachmentHandler.ConfirmAttachment)

		// ============================================================
		// Notification routes
		// ============================================================
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.GET("/stream", notificationHandler.StreamNotifications)
		}
	}

	return r
}
