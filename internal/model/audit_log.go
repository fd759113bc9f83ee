package model

import (
	"fmt"
	"time"
)

// AuditLogModel 审计日志数据模型
// 记录谁在什么时候对哪条成果或通知做了什么,用于事后追查
type AuditLogModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	UserID       string    `gorm:"type:varchar(64);not null;index"`
	Action       string    `gorm:"type:varchar(64);not null;index"` // create/update/verify/reject/resubmit/read
	ResourceType string    `gorm:"type:varchar(32);not null"`       // achievement/notification
	ResourceID   string    `gorm:"type:varchar(64);not null;index"`
	RequestID    string    `gorm:"type:varchar(64);index"`
	IP           string    `gorm:"type:varchar(45)"`
	UserAgent    string    `gorm:"type:text"`
	Details      []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// Validate 验证审计日志模型
func (alm *AuditLogModel) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"audit log ID", alm.ID},
		{"user ID", alm.UserID},
		{"action", alm.Action},
		{"resource type", alm.ResourceType},
		{"resource ID", alm.ResourceID},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}
	return nil
}
