package repository

import (
	"github.com/elan026/student-360/internal/model"
	"gorm.io/gorm"
)

// AuditLogRepository 审计日志仓储接口
// 只有追加和查询,审计记录写入后不可修改
type AuditLogRepository interface {
	Save(entry *model.AuditLogModel) error
	FindByUserID(userID string) ([]*model.AuditLogModel, error)
	FindByResource(resourceType string, resourceID string) ([]*model.AuditLogModel, error)
}

// auditLogRepository 审计日志仓储实现
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志仓储
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Save 追加审计日志
func (r *auditLogRepository) Save(entry *model.AuditLogModel) error {
	return r.db.Create(entry).Error
}

// FindByUserID 查询某个用户的操作记录,最新在前
func (r *auditLogRepository) FindByUserID(userID string) ([]*model.AuditLogModel, error) {
	return r.find(r.db.Where("user_id = ?", userID))
}

// FindByResource 查询针对某条资源的操作记录,最新在前
func (r *auditLogRepository) FindByResource(resourceType string, resourceID string) ([]*model.AuditLogModel, error) {
	return r.find(r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID))
}

func (r *auditLogRepository) find(query *gorm.DB) ([]*model.AuditLogModel, error) {
	var entries []*model.AuditLogModel
	err := query.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
