package database

import (
	"context"
	"fmt"
	"time"

	"github.com/elan026/student-360/internal/config"
	"github.com/elan026/student-360/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect 连接数据库并配置连接池
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(BuildDSN(cfg)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 配置缺省的连接池参数取开发环境默认值
	sqlDB.SetMaxIdleConns(intOrDefault(cfg.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(intOrDefault(cfg.MaxOpenConns, 100))
	sqlDB.SetConnMaxLifetime(time.Duration(intOrDefault(cfg.ConnMaxLifetime, 3600)) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(intOrDefault(cfg.ConnMaxIdleTime, 600)) * time.Second)

	return db, nil
}

func intOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// ConnectWithRetry 带重试的数据库连接
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		// 如果不是最后一次重试,等待后重试
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2 // 指数退避
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	// 检测数据库类型
	dialector := db.Dialector.Name()

	// SQLite 不支持 jsonb,需要手动创建表
	// GORM SQLite dialector 的名称可能是 "sqlite" 或 "sqlite3"
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		// PostgreSQL 等其他数据库使用 AutoMigrate
		if err := db.AutoMigrate(
			&model.ProfileModel{},
			&model.AchievementModel{},
			&model.VerificationHistoryModel{},
			&model.NotificationModel{},
			&model.AuditLogModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	// 创建索引
	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// sqliteDDL SQLite 建表语句,jsonb/布尔等类型与 PostgreSQL 不同,手动建表
var sqliteDDL = map[string]string{
	"profiles": `
		CREATE TABLE IF NOT EXISTS profiles (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			role VARCHAR(32) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	"achievements": `
		CREATE TABLE IF NOT EXISTS achievements (
			id VARCHAR(64) PRIMARY KEY,
			owner_id VARCHAR(64) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(64),
			attachment_ref VARCHAR(255),
			status VARCHAR(32) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	"verification_history": `
		CREATE TABLE IF NOT EXISTS verification_history (
			id VARCHAR(64) PRIMARY KEY,
			achievement_id VARCHAR(64) NOT NULL,
			from_status VARCHAR(32),
			to_status VARCHAR(32) NOT NULL,
			actor_id VARCHAR(64) NOT NULL,
			actor_role VARCHAR(32) NOT NULL,
			comment TEXT,
			created_at DATETIME NOT NULL
		)`,
	"notifications": `
		CREATE TABLE IF NOT EXISTS notifications (
			id VARCHAR(64) PRIMARY KEY,
			recipient_id VARCHAR(64) NOT NULL,
			achievement_id VARCHAR(64) NOT NULL,
			status VARCHAR(32) NOT NULL,
			actor_name VARCHAR(255),
			message TEXT,
			is_read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
	"audit_logs": `
		CREATE TABLE IF NOT EXISTS audit_logs (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			action VARCHAR(64) NOT NULL,
			resource_type VARCHAR(32) NOT NULL,
			resource_id VARCHAR(64) NOT NULL,
			request_id VARCHAR(64),
			ip VARCHAR(45),
			user_agent TEXT,
			details TEXT,
			created_at DATETIME NOT NULL
		)`,
}

// createSQLiteTables 为 SQLite 手动创建表
func createSQLiteTables(db *gorm.DB) error {
	for table, ddl := range sqliteDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to create %s table: %w", table, err)
		}
	}
	return nil
}

// indexStatements 查询路径对应的索引
// 成果按拥有者和状态过滤,历史和通知按时间倒序读取
var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_profiles_role ON profiles(role)",
	"CREATE INDEX IF NOT EXISTS idx_achievements_owner_id ON achievements(owner_id)",
	"CREATE INDEX IF NOT EXISTS idx_achievements_status_category ON achievements(status, category)",
	"CREATE INDEX IF NOT EXISTS idx_achievements_updated_at ON achievements(updated_at)",
	"CREATE INDEX IF NOT EXISTS idx_history_achievement_id ON verification_history(achievement_id)",
	"CREATE INDEX IF NOT EXISTS idx_history_created_at ON verification_history(created_at)",
	"CREATE INDEX IF NOT EXISTS idx_notifications_recipient_read ON notifications(recipient_id, is_read)",
	"CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at)",
	"CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs(resource_type, resource_id)",
	"CREATE INDEX IF NOT EXISTS idx_audit_user_id ON audit_logs(user_id)",
	"CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_logs(created_at)",
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
