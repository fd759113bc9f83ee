package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/utils"
	"github.com/google/uuid"
)

// 存储层约定的哨兵错误
var (
	// ErrAchievementNotFound 成果不存在
	ErrAchievementNotFound = errors.New("achievement not found")
	// ErrStatusConflict 条件更新失败,说明状态在读取之后被并发修改
	ErrStatusConflict = errors.New("achievement status conflict")
	// ErrEditLocked 写入时刻状态已不允许编辑内容
	ErrEditLocked = errors.New("achievement content is locked")
)

// Store 成果存储接口
// 实现方必须保证 CreateAchievement 和 ApplyTransition 的原子性:
// 状态写入和历史追加要么都生效,要么都不生效
type Store interface {
	// GetAchievement 读取成果,不存在时返回 ErrAchievementNotFound
	GetAchievement(ctx context.Context, id string) (*model.AchievementModel, error)
	// CreateAchievement 原子写入成果行和初始历史记录
	CreateAchievement(ctx context.Context, achievement *model.AchievementModel, entry *model.VerificationHistoryModel) error
	// ApplyTransition 以 expected 为前置条件更新状态并追加历史记录
	// 前置条件不成立时返回 ErrStatusConflict,且不产生任何写入
	ApplyTransition(ctx context.Context, id string, expected Status, to Status, updatedAt time.Time, entry *model.VerificationHistoryModel) (*model.AchievementModel, error)
	// UpdateContent 仅当当前状态在 editable 集合中时更新内容字段
	// 状态不满足时返回 ErrEditLocked,成果不存在时返回 ErrAchievementNotFound
	UpdateContent(ctx context.Context, id string, editable []Status, fields ContentFields, updatedAt time.Time) (*model.AchievementModel, error)
	// ListHistory 按时间倒序返回成果的全部历史记录
	ListHistory(ctx context.Context, achievementID string) ([]*model.VerificationHistoryModel, error)
}

// StatusNotification 状态变更通知
type StatusNotification struct {
	RecipientID   string
	AchievementID string
	Status        Status
	ActorName     string
	Comment       string
}

// Notifier 通知分发接口
// Notify 必须立即返回,投递失败不得影响已提交的状态变更
type Notifier interface {
	Notify(n StatusNotification)
}

// CreateRequest 创建成果请求
type CreateRequest struct {
	OwnerID       string
	Title         string
	Description   string
	Category      string
	AttachmentRef string
}

// TransitionRequest 状态转换请求
type TransitionRequest struct {
	AchievementID string
	ActorID       string
	ActorRole     Role
	ActorName     string // 仅用于通知展示
	To            Status
	Comment       string
}

// ContentFields 内容编辑字段,nil 表示不修改
type ContentFields struct {
	Title         *string
	Description   *string
	Category      *string
	AttachmentRef *string
}

// Empty 判断是否没有任何字段需要修改
func (f ContentFields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Category == nil && f.AttachmentRef == nil
}

// Engine 状态转换引擎
// 所有状态变更的唯一入口,负责状态机校验、角色校验和原子提交
type Engine struct {
	store    Store
	notifier Notifier
}

// NewEngine 创建状态转换引擎
// notifier 可以为 nil,此时跳过通知分发
func NewEngine(store Store, notifier Notifier) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
	}
}

// Create 创建成果,初始状态 pending
// 创建本身作为一次 ∅ -> pending 的退化转换记入历史,操作者是拥有者
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*model.AchievementModel, error) {
	now := time.Now().UTC()
	achievement := &model.AchievementModel{
		ID:            uuid.New().String(),
		OwnerID:       req.OwnerID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Category:      req.Category,
		AttachmentRef: req.AttachmentRef,
		Status:        string(StatusPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	entry := &model.VerificationHistoryModel{
		ID:            uuid.New().String(),
		AchievementID: achievement.ID,
		FromStatus:    "",
		ToStatus:      string(StatusPending),
		ActorID:       req.OwnerID,
		ActorRole:     string(RoleStudent),
		CreatedAt:     now,
	}

	if err := e.store.CreateAchievement(ctx, achievement, entry); err != nil {
		return nil, WrapError(KindStoreUnavailable, "failed to create achievement", err)
	}
	return achievement, nil
}

// ApplyTransition 校验并应用一次状态转换
// 校验顺序: 成果存在 -> 转换对合法 -> 角色/身份授权 -> 评论要求
// 提交通过单次条件写完成,条件写失败说明校验所依据的状态已经过期,
// 直接返回 StaleState,由调用方重新读取后自行决定是否重试
func (e *Engine) ApplyTransition(ctx context.Context, req TransitionRequest) (*model.AchievementModel, *model.VerificationHistoryModel, error) {
	achievement, err := e.store.GetAchievement(ctx, req.AchievementID)
	if err != nil {
		if errors.Is(err, ErrAchievementNotFound) {
			return nil, nil, NewError(KindNotFound, "achievement does not exist")
		}
		return nil, nil, WrapError(KindStoreUnavailable, "failed to load achievement", err)
	}

	current := Status(achievement.Status)
	if err := validateTransition(current, achievement.OwnerID, req); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	entry := &model.VerificationHistoryModel{
		ID:            uuid.New().String(),
		AchievementID: achievement.ID,
		FromStatus:    string(current),
		ToStatus:      string(req.To),
		ActorID:       req.ActorID,
		ActorRole:     string(req.ActorRole),
		Comment:       strings.TrimSpace(req.Comment),
		CreatedAt:     now,
	}

	updated, err := e.store.ApplyTransition(ctx, achievement.ID, current, req.To, now, entry)
	if errors.Is(err, ErrStatusConflict) {
		return nil, nil, NewError(KindStaleState, "achievement status changed concurrently")
	}
	if err != nil {
		return nil, nil, WrapError(KindStoreUnavailable, "failed to apply transition", err)
	}

	e.dispatch(updated, entry, req)
	return updated, entry, nil
}

// UpdateContent 更新成果的内容字段
// 编辑锁在写入时刻由存储层重新检查,避免审核与编辑之间的竞态
func (e *Engine) UpdateContent(ctx context.Context, id string, actorID string, fields ContentFields) (*model.AchievementModel, error) {
	// 空请求是调用方输入问题,不是编辑锁
	if fields.Empty() {
		return nil, utils.ErrNoContentFields
	}

	achievement, err := e.store.GetAchievement(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAchievementNotFound) {
			return nil, NewError(KindNotFound, "achievement does not exist")
		}
		return nil, WrapError(KindStoreUnavailable, "failed to load achievement", err)
	}
	if achievement.OwnerID != actorID {
		return nil, NewError(KindForbidden, "only the owner may edit achievement content")
	}

	updated, err := e.store.UpdateContent(ctx, id, EditableStatuses(), fields, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, ErrEditLocked):
			return nil, NewError(KindLocked, "achievement content is locked in the current status")
		case errors.Is(err, ErrAchievementNotFound):
			return nil, NewError(KindNotFound, "achievement does not exist")
		default:
			return nil, WrapError(KindStoreUnavailable, "failed to update content", err)
		}
	}
	return updated, nil
}

// History 返回成果的审核历史,最新在前
func (e *Engine) History(ctx context.Context, achievementID string) ([]*model.VerificationHistoryModel, error) {
	if _, err := e.store.GetAchievement(ctx, achievementID); err != nil {
		if errors.Is(err, ErrAchievementNotFound) {
			return nil, NewError(KindNotFound, "achievement does not exist")
		}
		return nil, WrapError(KindStoreUnavailable, "failed to load achievement", err)
	}

	entries, err := e.store.ListHistory(ctx, achievementID)
	if err != nil {
		return nil, WrapError(KindStoreUnavailable, "failed to list history", err)
	}
	return entries, nil
}

// validateTransition 纯状态机校验,不触达存储
func validateTransition(current Status, ownerID string, req TransitionRequest) error {
	// 目标状态与当前一致时是显式失败,不静默成功
	// 调用方必须重新读取当前状态后再决定是否重试
	if req.To == current {
		return NewError(KindStaleState, "achievement is already in the requested status")
	}

	rule, ok := transitions[transitionPair{current, req.To}]
	if !ok {
		return NewError(KindInvalidTransition, "transition is not permitted from the current status")
	}

	if !roleAllowed(rule, req.ActorRole) {
		return NewError(KindForbidden, "actor role is not authorized for this transition")
	}
	if rule.ownerOnly && req.ActorID != ownerID {
		return NewError(KindForbidden, "only the achievement owner may perform this transition")
	}

	if rule.requiresComment && strings.TrimSpace(req.Comment) == "" {
		return NewError(KindCommentRequired, "a non-empty comment is required for this transition")
	}

	return nil
}

// dispatch 提交成功后调度通知,绝不等待投递结果
func (e *Engine) dispatch(achievement *model.AchievementModel, entry *model.VerificationHistoryModel, req TransitionRequest) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(StatusNotification{
		RecipientID:   achievement.OwnerID,
		AchievementID: achievement.ID,
		Status:        req.To,
		ActorName:     req.ActorName,
		Comment:       entry.Comment,
	})
}
