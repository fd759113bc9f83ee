package notify_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/elan026/student-360/internal/database"
	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/notify"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationRepo(t *testing.T) repository.NotificationRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return repository.NewNotificationRepository(db)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// TestDispatcherPersistsNotification 通知被异步持久化,文案包含操作者
func TestDispatcherPersistsNotification(t *testing.T) {
	repo := setupNotificationRepo(t)
	dispatcher := notify.NewDispatcher(repo, nil, testLogger(), 2, 16)
	defer dispatcher.Close()

	dispatcher.Notify(workflow.StatusNotification{
		RecipientID:   "student-1",
		AchievementID: "ach-1",
		Status:        workflow.StatusRejected,
		ActorName:     "Prof. Chen",
		Comment:       "certificate is missing",
	})

	assert.Eventually(t, func() bool {
		unread, err := repo.FindUnreadByRecipient("student-1")
		return err == nil && len(unread) == 1
	}, 2*time.Second, 10*time.Millisecond)

	unread, err := repo.FindUnreadByRecipient("student-1")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "ach-1", unread[0].AchievementID)
	assert.Equal(t, string(workflow.StatusRejected), unread[0].Status)
	assert.Contains(t, unread[0].Message, "Prof. Chen")
	assert.Contains(t, unread[0].Message, "certificate is missing")
	assert.False(t, unread[0].IsRead)
}

// blockingRepo Save 阻塞直到放行,用于填满分发队列
type blockingRepo struct {
	release chan struct{}
	mu      sync.Mutex
	saved   int
}

func (r *blockingRepo) Save(_ *model.NotificationModel) error {
	<-r.release
	r.mu.Lock()
	r.saved++
	r.mu.Unlock()
	return nil
}

func (r *blockingRepo) FindUnreadByRecipient(string) ([]*model.NotificationModel, error) {
	return nil, nil
}

func (r *blockingRepo) MarkRead(string, string) error {
	return errors.New("not implemented")
}

// TestDispatcherNeverBlocksCaller 队列满时 Notify 立即返回并丢弃
func TestDispatcherNeverBlocksCaller(t *testing.T) {
	repo := &blockingRepo{release: make(chan struct{})}
	dispatcher := notify.NewDispatcher(repo, nil, testLogger(), 1, 2)
	defer dispatcher.Close()
	defer close(repo.release)

	done := make(chan struct{})
	go func() {
		// worker 卡在第一条上,后续填满队列再溢出
		for i := 0; i < 10; i++ {
			dispatcher.Notify(workflow.StatusNotification{
				RecipientID:   "student-1",
				AchievementID: "ach-1",
				Status:        workflow.StatusVerified,
			})
		}
		close(done)
	}()

	select {
	case <-done:
		// 立即返回,没有阻塞
	case <-time.After(time.Second):
		t.Fatal("Notify blocked when queue was full")
	}
}

// TestDispatcherDeliveryFailureIsIsolated 持久化失败只记日志,不影响后续投递
func TestDispatcherDeliveryFailureIsIsolated(t *testing.T) {
	repo := &flakyRepo{failFirst: true, inner: setupNotificationRepo(t)}
	dispatcher := notify.NewDispatcher(repo, nil, testLogger(), 1, 16)
	defer dispatcher.Close()

	dispatcher.Notify(workflow.StatusNotification{
		RecipientID:   "student-1",
		AchievementID: "ach-1",
		Status:        workflow.StatusVerified,
	})
	dispatcher.Notify(workflow.StatusNotification{
		RecipientID:   "student-1",
		AchievementID: "ach-2",
		Status:        workflow.StatusVerified,
	})

	assert.Eventually(t, func() bool {
		unread, err := repo.inner.FindUnreadByRecipient("student-1")
		return err == nil && len(unread) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

// flakyRepo 第一次 Save 失败,其余转发给真实仓储
type flakyRepo struct {
	mu        sync.Mutex
	failFirst bool
	inner     repository.NotificationRepository
}

func (r *flakyRepo) Save(n *model.NotificationModel) error {
	r.mu.Lock()
	fail := r.failFirst
	r.failFirst = false
	r.mu.Unlock()
	if fail {
		return errors.New("database unavailable")
	}
	return r.inner.Save(n)
}

func (r *flakyRepo) FindUnreadByRecipient(recipientID string) ([]*model.NotificationModel, error) {
	return r.inner.FindUnreadByRecipient(recipientID)
}

func (r *flakyRepo) MarkRead(id string, recipientID string) error {
	return r.inner.MarkRead(id, recipientID)
}
