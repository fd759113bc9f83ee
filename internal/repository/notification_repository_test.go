package repository_test

import (
	"testing"
	"time"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func saveNotification(t *testing.T, repo repository.NotificationRepository, recipientID string, createdAt time.Time) *model.NotificationModel {
	t.Helper()
	notification := &model.NotificationModel{
		ID:            uuid.New().String(),
		RecipientID:   recipientID,
		AchievementID: uuid.New().String(),
		Status:        "verified",
		ActorName:     "Prof. Chen",
		Message:       "Your achievement was verified by Prof. Chen",
		CreatedAt:     createdAt,
	}
	require.NoError(t, repo.Save(notification))
	return notification
}

// TestNotificationFindUnread 只返回未读通知,按时间倒序
func TestNotificationFindUnread(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)

	older := saveNotification(t, repo, "student-1", time.Now().UTC().Add(-time.Hour))
	newer := saveNotification(t, repo, "student-1", time.Now().UTC())
	saveNotification(t, repo, "student-2", time.Now().UTC())

	// 标记一条已读后不再返回
	require.NoError(t, repo.MarkRead(older.ID, "student-1"))

	unread, err := repo.FindUnreadByRecipient("student-1")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, newer.ID, unread[0].ID)
}

// TestNotificationUnreadOrder 未读通知最新在前
func TestNotificationUnreadOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)

	saveNotification(t, repo, "student-1", time.Now().UTC().Add(-time.Hour))
	newest := saveNotification(t, repo, "student-1", time.Now().UTC())

	unread, err := repo.FindUnreadByRecipient("student-1")
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, newest.ID, unread[0].ID)
}

// TestNotificationMarkReadWrongRecipient 用户不能标记别人的通知
func TestNotificationMarkReadWrongRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)

	notification := saveNotification(t, repo, "student-1", time.Now().UTC())

	err := repo.MarkRead(notification.ID, "student-2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 原通知仍然未读
	unread, err := repo.FindUnreadByRecipient("student-1")
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

// TestNotificationMarkReadMissing 不存在的通知返回未找到
func TestNotificationMarkReadMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)

	err := repo.MarkRead(uuid.New().String(), "student-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
