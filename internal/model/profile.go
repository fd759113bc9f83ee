package model

import (
	"errors"
	"time"
)

// ProfileModel 用户档案数据模型
// 身份与角色由 Keycloak 管理,这里只保存展示用的快照,认证请求时同步
type ProfileModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);index"`
	Role      string    `gorm:"type:varchar(32);not null;index"` // student/faculty/admin
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName 指定表名
func (ProfileModel) TableName() string {
	return "profiles"
}

// Validate 验证用户档案模型
func (pm *ProfileModel) Validate() error {
	if pm.ID == "" {
		return errors.New("profile ID is required")
	}
	if pm.Name == "" {
		return errors.New("name is required")
	}
	if pm.Role == "" {
		return errors.New("role is required")
	}
	return nil
}
