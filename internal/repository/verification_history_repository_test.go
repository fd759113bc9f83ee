package repository_test

import (
	"testing"
	"time"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveHistoryEntry(t *testing.T, repo repository.VerificationHistoryRepository, achievementID string, to workflow.Status, createdAt time.Time) *model.VerificationHistoryModel {
	t.Helper()
	entry := &model.VerificationHistoryModel{
		ID:            uuid.New().String(),
		AchievementID: achievementID,
		ToStatus:      string(to),
		ActorID:       "faculty-1",
		ActorRole:     string(workflow.RoleFaculty),
		CreatedAt:     createdAt,
	}
	require.NoError(t, repo.Save(entry))
	return entry
}

// TestVerificationHistoryOrder 历史记录按时间倒序返回
func TestVerificationHistoryOrder(t *testing.T) {
	repo := repository.NewVerificationHistoryRepository(setupTestDB(t))

	base := time.Now().UTC().Truncate(time.Second)
	saveHistoryEntry(t, repo, "ach-1", workflow.StatusPending, base)
	saveHistoryEntry(t, repo, "ach-1", workflow.StatusUnderReview, base.Add(time.Second))
	latest := saveHistoryEntry(t, repo, "ach-1", workflow.StatusVerified, base.Add(2*time.Second))
	saveHistoryEntry(t, repo, "ach-2", workflow.StatusPending, base)

	entries, err := repo.FindByAchievementID("ach-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, latest.ID, entries[0].ID)
	assert.Equal(t, string(workflow.StatusPending), entries[2].ToStatus)
}

// TestVerificationHistoryEmpty 无历史记录时返回空集合
func TestVerificationHistoryEmpty(t *testing.T) {
	repo := repository.NewVerificationHistoryRepository(setupTestDB(t))

	entries, err := repo.FindByAchievementID("missing")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
