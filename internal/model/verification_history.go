package model

import (
	"errors"
	"time"
)

// VerificationHistoryModel 审核历史数据模型
// 只追加,写入后不再修改或删除;ActorRole 是操作时刻的角色快照
type VerificationHistoryModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	AchievementID string    `gorm:"type:varchar(64);not null;index"`
	FromStatus    string    `gorm:"type:varchar(32)"` // 创建记录时为空
	ToStatus      string    `gorm:"type:varchar(32);not null"`
	ActorID       string    `gorm:"type:varchar(64);not null"`
	ActorRole     string    `gorm:"type:varchar(32);not null"`
	Comment       string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (VerificationHistoryModel) TableName() string {
	return "verification_history"
}

// Validate 验证审核历史模型
func (vhm *VerificationHistoryModel) Validate() error {
	if vhm.ID == "" {
		return errors.New("history ID is required")
	}
	if vhm.AchievementID == "" {
		return errors.New("achievement ID is required")
	}
	if vhm.ToStatus == "" {
		return errors.New("to status is required")
	}
	if vhm.ActorID == "" {
		return errors.New("actor ID is required")
	}
	if vhm.ActorRole == "" {
		return errors.New("actor role is required")
	}
	return nil
}
