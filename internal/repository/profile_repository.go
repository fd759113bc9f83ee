package repository

import (
	"github.com/elan026/student-360/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 用户档案仓储接口
type ProfileRepository interface {
	Upsert(profile *model.ProfileModel) error
	FindByID(id string) (*model.ProfileModel, error)
	FindByRole(role string) ([]*model.ProfileModel, error)
}

// profileRepository 用户档案仓储实现
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户档案仓储
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert 插入或更新用户档案
// 认证中间件在每次请求时同步 Keycloak 中的最新信息
func (r *profileRepository) Upsert(profile *model.ProfileModel) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
	}).Create(profile).Error
}

// FindByID 根据 ID 查找用户档案
func (r *profileRepository) FindByID(id string) (*model.ProfileModel, error) {
	var profile model.ProfileModel
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByRole 根据角色查找用户档案
func (r *profileRepository) FindByRole(role string) ([]*model.ProfileModel, error) {
	var profiles []*model.ProfileModel
	err := r.db.Where("role = ?", role).Order("name ASC").Find(&profiles).Error
	return profiles, err
}
