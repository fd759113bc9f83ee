package service

import (
	"context"
	"errors"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/workflow"
	"gorm.io/gorm"
)

// NotificationService 通知服务接口
type NotificationService interface {
	ListUnread(ctx context.Context, recipientID string) ([]*model.NotificationModel, error)
	MarkRead(ctx context.Context, id string, recipientID string) error
}

// notificationService 通知服务实现
type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
	}
}

// ListUnread 获取用户未读通知,按时间倒序
func (s *notificationService) ListUnread(ctx context.Context, recipientID string) ([]*model.NotificationModel, error) {
	notifications, err := s.notificationRepo.FindUnreadByRecipient(recipientID)
	if err != nil {
		return nil, workflow.WrapError(workflow.KindStoreUnavailable, "failed to list notifications", err)
	}
	return notifications, nil
}

// MarkRead 将通知标记为已读
// recipientID 参与匹配,用户不能读别人的通知
func (s *notificationService) MarkRead(ctx context.Context, id string, recipientID string) error {
	if err := s.notificationRepo.MarkRead(id, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.NewError(workflow.KindNotFound, "notification does not exist")
		}
		return workflow.WrapError(workflow.KindStoreUnavailable, "failed to mark notification read", err)
	}
	return nil
}
