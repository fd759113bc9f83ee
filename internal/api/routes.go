package api

import (
	"net/http"

	"github.com/elan026/student-360/internal/auth"
	"github.com/elan026/student-360/internal/config"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/service"
	"github.com/elan026/student-360/internal/websocket"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config              *config.Config
	Logger              *logrus.Logger
	DB                  *gorm.DB
	Validator           *auth.KeycloakTokenValidator
	Hub                 *websocket.Hub
	ProfileRepo         repository.ProfileRepository
	AchievementService  service.AchievementService
	NotificationService service.NotificationService
}

// SetupRoutes 配置路由
func SetupRoutes(deps RouterDeps) *gin.Engine {
	if deps.Config != nil && deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware(deps.Logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(ErrorHandlerMiddleware())
	if deps.Config != nil {
		router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
		if deps.Config.Server.RateLimitRPS > 0 {
			router.Use(RateLimitMiddleware(deps.Config.Server.RateLimitRPS, deps.Config.Server.RateLimitBurst))
		}
		if deps.Config.Tracing.Enabled {
			router.Use(TracingMiddleware())
		}
	}

	// 健康检查
	healthController := NewHealthController(deps.DB, deps.Hub)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 路由
	if deps.Hub != nil && deps.Validator != nil {
		router.GET("/ws/achievements", websocket.Handler(deps.Hub, deps.Validator, deps.Logger))
	}

	// SSE 路由
	if deps.Validator != nil && deps.AchievementService != nil {
		router.GET("/sse/achievements/:id", SSEHandler(deps.Validator, deps.AchievementService))
	}

	// API v1 路由组,全部需要认证
	v1 := router.Group("/api/v1")
	v1.Use(auth.KeycloakAuthMiddleware(deps.Validator))
	v1.Use(ProfileSyncMiddleware(deps.ProfileRepo, deps.Logger))
	{
		achievementController := NewAchievementController(deps.AchievementService)
		achievements := v1.Group("/achievements")
		{
			achievements.POST("", auth.RequireRoles(workflow.RoleStudent), achievementController.Create)
			achievements.GET("", achievementController.List)
			achievements.GET("/:id", achievementController.Get)
			achievements.PATCH("/:id", auth.RequireRoles(workflow.RoleStudent), achievementController.UpdateContent)
			achievements.POST("/:id/status", auth.RequireRoles(workflow.RoleFaculty, workflow.RoleAdmin), achievementController.UpdateStatus)
			achievements.POST("/:id/resubmit", auth.RequireRoles(workflow.RoleStudent), achievementController.Resubmit)
			achievements.GET("/:id/history", achievementController.GetHistory)
		}

		notificationController := NewNotificationController(deps.NotificationService)
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationController.ListUnread)
			notifications.POST("/:id/read", notificationController.MarkRead)
		}

		profileController := NewProfileController(deps.ProfileRepo)
		v1.GET("/profiles/me", profileController.Me)
	}

	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", c.Request.URL.Path)
	})

	return router
}
