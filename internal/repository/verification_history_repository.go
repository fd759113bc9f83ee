package repository

import (
	"github.com/elan026/student-360/internal/model"
	"gorm.io/gorm"
)

// VerificationHistoryRepository 审核历史仓储接口
// 故意不提供更新和删除:历史记录的证据价值依赖不可变性,
// 这里用结构保证而不是约定保证
type VerificationHistoryRepository interface {
	Save(entry *model.VerificationHistoryModel) error
	FindByAchievementID(achievementID string) ([]*model.VerificationHistoryModel, error)
}

// verificationHistoryRepository 审核历史仓储实现
type verificationHistoryRepository struct {
	db *gorm.DB
}

// NewVerificationHistoryRepository 创建审核历史仓储
func NewVerificationHistoryRepository(db *gorm.DB) VerificationHistoryRepository {
	return &verificationHistoryRepository{db: db}
}

// Save 追加审核历史记录
func (r *verificationHistoryRepository) Save(entry *model.VerificationHistoryModel) error {
	return r.db.Create(entry).Error
}

// FindByAchievementID 根据成果 ID 查找审核历史,最新在前
func (r *verificationHistoryRepository) FindByAchievementID(achievementID string) ([]*model.VerificationHistoryModel, error) {
	var entries []*model.VerificationHistoryModel
	err := r.db.Where("achievement_id = ?", achievementID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}
