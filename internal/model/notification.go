package model

import (
	"errors"
	"time"
)

// NotificationModel 通知数据模型
// 状态变更提交后由分发器异步写入,投递失败不影响已提交的状态变更
type NotificationModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	RecipientID   string    `gorm:"type:varchar(64);not null;index"`
	AchievementID string    `gorm:"type:varchar(64);not null;index"`
	Status        string    `gorm:"type:varchar(32);not null"` // 变更后的成果状态
	ActorName     string    `gorm:"type:varchar(255)"`         // 执行审核操作的用户名称
	Message       string    `gorm:"type:text"`
	IsRead        bool      `gorm:"not null;default:false;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}

// Validate 验证通知模型
func (nm *NotificationModel) Validate() error {
	if nm.ID == "" {
		return errors.New("notification ID is required")
	}
	if nm.RecipientID == "" {
		return errors.New("recipient ID is required")
	}
	if nm.AchievementID == "" {
		return errors.New("achievement ID is required")
	}
	if nm.Status == "" {
		return errors.New("status is required")
	}
	return nil
}
