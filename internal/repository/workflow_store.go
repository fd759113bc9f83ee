package repository

import (
	"context"
	"errors"
	"time"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/workflow"
	"gorm.io/gorm"
)

// workflowStore workflow.Store 的 gorm 实现
// 状态写入和历史追加放在同一个事务里,状态更新带条件,
// 两个并发请求不可能基于同一个旧状态都提交成功
type workflowStore struct {
	db      *gorm.DB
	history VerificationHistoryRepository
}

// NewWorkflowStore 创建工作流存储
func NewWorkflowStore(db *gorm.DB) workflow.Store {
	return &workflowStore{db: db, history: NewVerificationHistoryRepository(db)}
}

// GetAchievement 读取成果
func (s *workflowStore) GetAchievement(ctx context.Context, id string) (*model.AchievementModel, error) {
	var achievement model.AchievementModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&achievement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrAchievementNotFound
		}
		return nil, err
	}
	return &achievement, nil
}

// CreateAchievement 原子写入成果行和初始历史记录
func (s *workflowStore) CreateAchievement(ctx context.Context, achievement *model.AchievementModel, entry *model.VerificationHistoryModel) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(achievement).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// ApplyTransition 条件更新状态并在同一事务中追加历史记录
func (s *workflowStore) ApplyTransition(ctx context.Context, id string, expected workflow.Status, to workflow.Status, updatedAt time.Time, entry *model.VerificationHistoryModel) (*model.AchievementModel, error) {
	var updated model.AchievementModel

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.AchievementModel{}).
			Where("id = ? AND status = ?", id, string(expected)).
			Updates(map[string]interface{}{
				"status":     string(to),
				"updated_at": updatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 区分成果不存在和状态被并发修改
			var count int64
			if err := tx.Model(&model.AchievementModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return workflow.ErrAchievementNotFound
			}
			return workflow.ErrStatusConflict
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateContent 仅当状态允许编辑时更新内容字段
// 编辑锁在 UPDATE 的 WHERE 条件里检查,提交瞬间仍然成立
func (s *workflowStore) UpdateContent(ctx context.Context, id string, editable []workflow.Status, fields workflow.ContentFields, updatedAt time.Time) (*model.AchievementModel, error) {
	updates := map[string]interface{}{"updated_at": updatedAt}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.AttachmentRef != nil {
		updates["attachment_ref"] = *fields.AttachmentRef
	}

	statuses := make([]string, len(editable))
	for i, s := range editable {
		statuses[i] = string(s)
	}

	var updated model.AchievementModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.AchievementModel{}).
			Where("id = ? AND status IN ?", id, statuses).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.AchievementModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return workflow.ErrAchievementNotFound
			}
			return workflow.ErrEditLocked
		}

		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListHistory 按时间倒序返回审核历史
func (s *workflowStore) ListHistory(ctx context.Context, achievementID string) ([]*model.VerificationHistoryModel, error) {
	return s.history.FindByAchievementID(achievementID)
}
