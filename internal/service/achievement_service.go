package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elan026/student-360/internal/metrics"
	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/utils"
	"github.com/elan026/student-360/internal/workflow"
	"gorm.io/gorm"
)

// AchievementService 成果服务接口
type AchievementService interface {
	Create(ctx context.Context, ownerID string, req *CreateAchievementRequest) (*model.AchievementModel, error)
	Get(ctx context.Context, id string, actorID string, role workflow.Role) (*model.AchievementModel, error)
	List(ctx context.Context, actorID string, role workflow.Role, query *ListAchievementsQuery) ([]*model.AchievementModel, error)
	UpdateStatus(ctx context.Context, id string, actor Actor, req *UpdateStatusRequest) (*model.AchievementModel, error)
	UpdateContent(ctx context.Context, id string, actorID string, req *UpdateContentRequest) (*model.AchievementModel, error)
	Resubmit(ctx context.Context, id string, actor Actor) (*model.AchievementModel, error)
	GetHistory(ctx context.Context, id string, actorID string, role workflow.Role) ([]*model.VerificationHistoryModel, error)
}

// Actor 发起操作的用户身份
type Actor struct {
	ID   string
	Role workflow.Role
	Name string
}

// CreateAchievementRequest 创建成果请求
// @Description 创建学生成果的请求参数
type CreateAchievementRequest struct {
	Title         string `json:"title" example:"National Math Olympiad, 2nd place" binding:"required"` // 成果标题
	Description   string `json:"description" example:"Regional finals, December 2025"`                 // 成果描述
	Category      string `json:"category" example:"competition"`                                       // 成果类别
	AttachmentRef string `json:"attachment_ref" example:"uploads/certificate.pdf"`                     // 附件引用
}

// UpdateStatusRequest 状态变更请求
// @Description 成果状态变更的请求参数
type UpdateStatusRequest struct {
	Status  string `json:"status" example:"verified" binding:"required"` // 目标状态
	Comment string `json:"comment" example:"Certificate checked"`        // 审核意见
}

// UpdateContentRequest 内容编辑请求
// @Description 成果内容编辑的请求参数,缺省字段不修改
type UpdateContentRequest struct {
	Title         *string `json:"title"`          // 成果标题
	Description   *string `json:"description"`    // 成果描述
	Category      *string `json:"category"`       // 成果类别
	AttachmentRef *string `json:"attachment_ref"` // 附件引用
}

// ListAchievementsQuery 成果列表查询参数
type ListAchievementsQuery struct {
	Status    string
	Category  string
	OwnerID   string
	SortField string
	SortOrder string
}

// achievementService 成果服务实现
type achievementService struct {
	engine          *workflow.Engine
	achievementRepo repository.AchievementRepository
	auditLogSvc     AuditLogService
}

// NewAchievementService 创建成果服务
func NewAchievementService(engine *workflow.Engine, achievementRepo repository.AchievementRepository, auditLogSvc AuditLogService) AchievementService {
	return &achievementService{
		engine:          engine,
		achievementRepo: achievementRepo,
		auditLogSvc:     auditLogSvc,
	}
}

// Create 创建成果
func (s *achievementService) Create(ctx context.Context, ownerID string, req *CreateAchievementRequest) (*model.AchievementModel, error) {
	if err := utils.ValidateTitle(req.Title); err != nil {
		return nil, err
	}

	achievement, err := s.engine.Create(ctx, workflow.CreateRequest{
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   utils.SanitizeString(req.Description),
		Category:      utils.SanitizeString(req.Category),
		AttachmentRef: utils.SanitizeString(req.AttachmentRef),
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordAchievementCreated()

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"achievement_id":"%s","title":%q}`, achievement.ID, achievement.Title)
		_ = s.auditLogSvc.RecordAction(ctx, ownerID, "create", "achievement", achievement.ID, details)
	}

	return achievement, nil
}

// Get 获取成果详情
// 学生只能查看自己的成果,审核角色可以查看全部
func (s *achievementService) Get(ctx context.Context, id string, actorID string, role workflow.Role) (*model.AchievementModel, error) {
	if err := utils.ValidateAchievementID(id); err != nil {
		return nil, workflow.NewError(workflow.KindNotFound, "achievement does not exist")
	}

	achievement, err := s.achievementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewError(workflow.KindNotFound, "achievement does not exist")
		}
		return nil, workflow.WrapError(workflow.KindStoreUnavailable, "failed to load achievement", err)
	}
	if role == workflow.RoleStudent && achievement.OwnerID != actorID {
		return nil, workflow.NewError(workflow.KindForbidden, "students can only view their own achievements")
	}
	return achievement, nil
}

// List 按角色范围查询成果列表
// 学生固定只能看到自己的成果,忽略 query 中的 OwnerID
func (s *achievementService) List(ctx context.Context, actorID string, role workflow.Role, query *ListAchievementsQuery) ([]*model.AchievementModel, error) {
	filter := &repository.AchievementFilter{
		SortField: query.SortField,
		SortOrder: query.SortOrder,
	}
	if query.Status != "" {
		if !workflow.ValidStatus(workflow.Status(query.Status)) {
			return nil, utils.ErrUnknownStatus
		}
		filter.Status = &query.Status
	}
	if query.Category != "" {
		filter.Category = &query.Category
	}

	if role == workflow.RoleStudent {
		filter.OwnerID = &actorID
	} else if query.OwnerID != "" {
		ownerID := query.OwnerID
		filter.OwnerID = &ownerID
	}

	achievements, err := s.achievementRepo.FindByFilter(filter)
	if err != nil {
		return nil, workflow.WrapError(workflow.KindStoreUnavailable, "failed to list achievements", err)
	}
	return achievements, nil
}

// UpdateStatus 变更成果状态
func (s *achievementService) UpdateStatus(ctx context.Context, id string, actor Actor, req *UpdateStatusRequest) (*model.AchievementModel, error) {
	to := workflow.Status(req.Status)
	if !workflow.ValidStatus(to) {
		return nil, utils.ErrUnknownStatus
	}

	achievement, entry, err := s.engine.ApplyTransition(ctx, workflow.TransitionRequest{
		AchievementID: id,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ActorName:     actor.Name,
		To:            to,
		Comment:       req.Comment,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(to))

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"achievement_id":"%s","from":"%s","to":"%s"}`, id, entry.FromStatus, entry.ToStatus)
		_ = s.auditLogSvc.RecordAction(ctx, actor.ID, "update_status", "achievement", id, details)
	}

	return achievement, nil
}

// UpdateContent 编辑成果内容
// 只有 pending 或 rejected 状态的成果允许编辑,且只有拥有者可以编辑
func (s *achievementService) UpdateContent(ctx context.Context, id string, actorID string, req *UpdateContentRequest) (*model.AchievementModel, error) {
	if req.Title != nil {
		if err := utils.ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	achievement, err := s.engine.UpdateContent(ctx, id, actorID, workflow.ContentFields{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		AttachmentRef: req.AttachmentRef,
	})
	if err != nil {
		return nil, err
	}

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"achievement_id":"%s"}`, id)
		_ = s.auditLogSvc.RecordAction(ctx, actorID, "update_content", "achievement", id, details)
	}

	return achievement, nil
}

// Resubmit 被拒绝后重新提交,rejected -> pending
func (s *achievementService) Resubmit(ctx context.Context, id string, actor Actor) (*model.AchievementModel, error) {
	achievement, _, err := s.engine.ApplyTransition(ctx, workflow.TransitionRequest{
		AchievementID: id,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ActorName:     actor.Name,
		To:            workflow.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(workflow.StatusPending))

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"achievement_id":"%s"}`, id)
		_ = s.auditLogSvc.RecordAction(ctx, actor.ID, "resubmit", "achievement", id, details)
	}

	return achievement, nil
}

// GetHistory 获取成果审核历史,按时间倒序
func (s *achievementService) GetHistory(ctx context.Context, id string, actorID string, role workflow.Role) ([]*model.VerificationHistoryModel, error) {
	if _, err := s.Get(ctx, id, actorID, role); err != nil {
		return nil, err
	}
	return s.engine.History(ctx, id)
}
