package model

import (
	"errors"
	"time"
)

// AchievementModel 成果数据模型
// Status 只能由 workflow.Engine 修改,内容字段受编辑锁策略约束
type AchievementModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	OwnerID       string    `gorm:"type:varchar(64);not null;index"` // 提交学生 ID,创建后不可变
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Category      string    `gorm:"type:varchar(64);index"`
	AttachmentRef string    `gorm:"type:varchar(255)"` // 附件在对象存储中的引用
	Status        string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (AchievementModel) TableName() string {
	return "achievements"
}

// Validate 验证成果模型
func (am *AchievementModel) Validate() error {
	if am.ID == "" {
		return errors.New("achievement ID is required")
	}
	if am.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	if am.Title == "" {
		return errors.New("title is required")
	}
	if am.Status == "" {
		return errors.New("status is required")
	}
	return nil
}
