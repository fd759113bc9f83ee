package repository

import (
	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/utils"
	"gorm.io/gorm"
)

// AchievementRepository 成果仓储接口
type AchievementRepository interface {
	Save(achievement *model.AchievementModel) error
	FindByID(id string) (*model.AchievementModel, error)
	FindByOwner(ownerID string) ([]*model.AchievementModel, error)
	FindByFilter(filter *AchievementFilter) ([]*model.AchievementModel, error)
	CountByStatus() (map[string]int64, error)
}

// AchievementFilter 成果查询过滤器
type AchievementFilter struct {
	OwnerID   *string
	Status    *string
	Category  *string
	StartTime *string
	EndTime   *string
	SortField string // 为空时按 created_at 排序
	SortOrder string // asc/desc,为空时取 desc
}

// achievementRepository 成果仓储实现
type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository 创建成果仓储
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// Save 保存成果
func (r *achievementRepository) Save(achievement *model.AchievementModel) error {
	return r.db.Save(achievement).Error
}

// FindByID 根据 ID 查找成果
func (r *achievementRepository) FindByID(id string) (*model.AchievementModel, error) {
	var achievement model.AchievementModel
	if err := r.db.Where("id = ?", id).First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

// FindByOwner 查找某个学生的所有成果
func (r *achievementRepository) FindByOwner(ownerID string) ([]*model.AchievementModel, error) {
	var achievements []*model.AchievementModel
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&achievements).Error
	return achievements, err
}

// FindByFilter 根据过滤器查找成果
func (r *achievementRepository) FindByFilter(filter *AchievementFilter) ([]*model.AchievementModel, error) {
	var achievements []*model.AchievementModel
	query := r.db.Model(&model.AchievementModel{})

	order := "created_at DESC"
	if filter != nil {
		if filter.OwnerID != nil {
			query = query.Where("owner_id = ?", *filter.OwnerID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Category != nil {
			query = query.Where("category = ?", *filter.Category)
		}
		if filter.StartTime != nil {
			query = query.Where("created_at >= ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			query = query.Where("created_at <= ?", *filter.EndTime)
		}
		if filter.SortField != "" {
			// 排序字段来自查询参数,必须过一遍白名单式清洗
			field := utils.SanitizeSortField(filter.SortField)
			if err := utils.ValidateSortField(field); err == nil {
				order = field + " " + utils.SanitizeSortOrder(filter.SortOrder)
			}
		}
	}

	err := query.Order(order).Find(&achievements).Error
	return achievements, err
}

// CountByStatus 按状态统计成果数量
func (r *achievementRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&model.AchievementModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
