package container

import (
	"fmt"
	"time"

	"github.com/elan026/student-360/internal/auth"
	"github.com/elan026/student-360/internal/config"
	"github.com/elan026/student-360/internal/database"
	"github.com/elan026/student-360/internal/metrics"
	"github.com/elan026/student-360/internal/notify"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/service"
	"github.com/elan026/student-360/internal/websocket"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理数据库、仓储、工作流引擎、通知分发器和服务
type Container struct {
	db                  *gorm.DB
	hub                 *websocket.Hub
	dispatcher          *notify.Dispatcher
	keycloakValidator   *auth.KeycloakTokenValidator
	profileRepo         repository.ProfileRepository
	achievementRepo     repository.AchievementRepository
	achievementService  service.AchievementService
	notificationService service.NotificationService
	metricsStop         chan struct{}
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 1. 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. 初始化仓储
	achievementRepo := repository.NewAchievementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// 3. 初始化实时推送 Hub 和通知分发器
	hub := websocket.NewHub()
	dispatcher := notify.NewDispatcher(notificationRepo, hub, logger, cfg.Notify.Workers, cfg.Notify.QueueSize)

	// 4. 初始化工作流引擎
	engine := workflow.NewEngine(repository.NewWorkflowStore(db), dispatcher)

	// 5. 初始化服务
	auditLogSvc := service.NewAuditLogService(auditLogRepo)
	achievementSvc := service.NewAchievementService(engine, achievementRepo, auditLogSvc)
	notificationSvc := service.NewNotificationService(notificationRepo)

	// 6. 初始化 Keycloak Token 验证器
	keycloakValidator := auth.NewKeycloakTokenValidator(cfg.Keycloak.Issuer)

	return &Container{
		db:                  db,
		hub:                 hub,
		dispatcher:          dispatcher,
		keycloakValidator:   keycloakValidator,
		profileRepo:         profileRepo,
		achievementRepo:     achievementRepo,
		achievementService:  achievementSvc,
		notificationService: notificationSvc,
	}, nil
}

// StartMetricsCollector 启动后台指标采集
// 定期刷新数据库连接池和成果状态分布指标
func (c *Container) StartMetricsCollector(interval time.Duration, logger *logrus.Logger) {
	if c.metricsStop != nil {
		return
	}
	c.metricsStop = make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := metrics.UpdateDatabaseConnections(c.db); err != nil {
					logger.WithError(err).Warn("failed to update database connection metrics")
				}
				counts, err := c.achievementRepo.CountByStatus()
				if err != nil {
					logger.WithError(err).Warn("failed to count achievements by status")
					continue
				}
				for _, status := range workflow.AllStatuses() {
					metrics.UpdateAchievementsByStatus(string(status), float64(counts[string(status)]))
				}
			case <-c.metricsStop:
				return
			}
		}
	}()
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Hub 获取实时推送 Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// KeycloakValidator 获取 Keycloak Token 验证器
func (c *Container) KeycloakValidator() *auth.KeycloakTokenValidator {
	return c.keycloakValidator
}

// ProfileRepository 获取用户档案仓储
func (c *Container) ProfileRepository() repository.ProfileRepository {
	return c.profileRepo
}

// AchievementService 获取成果服务
func (c *Container) AchievementService() service.AchievementService {
	return c.achievementService
}

// NotificationService 获取通知服务
func (c *Container) NotificationService() service.NotificationService {
	return c.notificationService
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.metricsStop != nil {
		close(c.metricsStop)
		c.metricsStop = nil
	}

	if c.dispatcher != nil {
		c.dispatcher.Close()
	}

	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return nil
}
