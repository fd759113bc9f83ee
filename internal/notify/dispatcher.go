package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/elan026/student-360/internal/metrics"
	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/websocket"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dispatcher 通知分发器
// 从引擎视角是 fire-and-forget:Notify 只入队,投递在 worker 中完成,
// 投递失败只记日志,永远不会回传给已提交的状态变更
type Dispatcher struct {
	notificationRepo repository.NotificationRepository
	hub              *websocket.Hub
	logger           *logrus.Logger
	queue            chan workflow.StatusNotification
	stop             chan struct{}
}

// NewDispatcher 创建通知分发器并启动 worker goroutines
// hub 可以为 nil,此时只持久化通知不做实时推送
func NewDispatcher(notificationRepo repository.NotificationRepository, hub *websocket.Hub, logger *logrus.Logger, workers int, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1000
	}

	d := &Dispatcher{
		notificationRepo: notificationRepo,
		hub:              hub,
		logger:           logger,
		queue:            make(chan workflow.StatusNotification, queueSize),
		stop:             make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

// Notify 将通知入队,立即返回
// 队列满时丢弃并记日志,不阻塞调用方
func (d *Dispatcher) Notify(n workflow.StatusNotification) {
	select {
	case d.queue <- n:
		// 成功入队
	default:
		d.logger.WithFields(logrus.Fields{
			"recipient_id":   n.RecipientID,
			"achievement_id": n.AchievementID,
		}).Warn("notification queue full, dropping notification")
	}
}

// Close 停止所有 worker
func (d *Dispatcher) Close() {
	close(d.stop)
}

// worker 通知投递 worker
func (d *Dispatcher) worker() {
	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		case <-d.stop:
			return
		}
	}
}

// deliver 持久化通知并推送到实时通道
func (d *Dispatcher) deliver(n workflow.StatusNotification) {
	notification := &model.NotificationModel{
		ID:            uuid.New().String(),
		RecipientID:   n.RecipientID,
		AchievementID: n.AchievementID,
		Status:        string(n.Status),
		ActorName:     n.ActorName,
		Message:       buildMessage(n),
		CreatedAt:     time.Now().UTC(),
	}

	if err := d.notificationRepo.Save(notification); err != nil {
		d.logger.WithFields(logrus.Fields{
			"recipient_id":   n.RecipientID,
			"achievement_id": n.AchievementID,
		}).WithError(err).Error("failed to persist notification")
		// 持久化失败仍然尝试实时推送
	} else {
		metrics.RecordNotificationDelivered()
	}

	if d.hub != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"type":           "status_change",
			"achievement_id": n.AchievementID,
			"status":         string(n.Status),
			"actor_name":     n.ActorName,
			"message":        notification.Message,
			"time":           notification.CreatedAt.Unix(),
		})
		if err != nil {
			d.logger.WithError(err).Error("failed to marshal notification payload")
			return
		}
		d.hub.SendToUser(n.RecipientID, payload)
	}
}

// buildMessage 生成通知展示文案
func buildMessage(n workflow.StatusNotification) string {
	actor := n.ActorName
	if actor == "" {
		actor = "a reviewer"
	}

	switch n.Status {
	case workflow.StatusUnderReview:
		return fmt.Sprintf("Your achievement is now under review by %s", actor)
	case workflow.StatusVerified:
		return fmt.Sprintf("Your achievement was verified by %s", actor)
	case workflow.StatusRejected:
		if n.Comment != "" {
			return fmt.Sprintf("Your achievement was rejected by %s: %s", actor, n.Comment)
		}
		return fmt.Sprintf("Your achievement was rejected by %s", actor)
	case workflow.StatusPending:
		return "Your achievement was resubmitted and is pending review"
	default:
		return fmt.Sprintf("Your achievement status changed to %s", n.Status)
	}
}
