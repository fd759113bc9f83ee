package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 成果创建数
	achievementsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "achievements_created_total",
			Help: "Total number of achievements created",
		},
	)

	// 状态转换数
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_transitions_total",
			Help: "Total number of achievement status transitions",
		},
		[]string{"to_status"},
	)

	// 通知投递数
	notificationsDeliveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_delivered_total",
			Help: "Total number of notifications delivered",
		},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)

	// 成果状态分布
	achievementsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "achievements_by_status",
			Help: "Number of achievements by status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		achievementsCreatedTotal,
		transitionsTotal,
		notificationsDeliveredTotal,
		databaseConnectionsActive,
		databaseConnectionsIdle,
		databaseConnectionsMax,
		achievementsByStatus,
	)

	// Go 运行时指标可能已被其它包注册,冲突时忽略
	_ = prometheus.Register(prometheus.NewGoCollector())
	_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordAchievementCreated 记录成果创建
func RecordAchievementCreated() {
	achievementsCreatedTotal.Inc()
}

// RecordTransition 记录状态转换
func RecordTransition(toStatus string) {
	transitionsTotal.WithLabelValues(toStatus).Inc()
}

// RecordNotificationDelivered 记录通知投递
func RecordNotificationDelivered() {
	notificationsDeliveredTotal.Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}

// UpdateAchievementsByStatus 更新成果状态分布指标
func UpdateAchievementsByStatus(status string, count float64) {
	achievementsByStatus.WithLabelValues(status).Set(count)
}
