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

func saveAchievement(t *testing.T, repo repository.AchievementRepository, ownerID string, status workflow.Status, category string) *model.AchievementModel {
	t.Helper()
	now := time.Now().UTC()
	achievement := &model.AchievementModel{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     "Achievement of " + ownerID,
		Category:  category,
		Status:    string(status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Save(achievement))
	return achievement
}

// TestAchievementFindByOwner 按拥有者查询
func TestAchievementFindByOwner(t *testing.T) {
	repo := repository.NewAchievementRepository(setupTestDB(t))

	saveAchievement(t, repo, "student-1", workflow.StatusPending, "competition")
	saveAchievement(t, repo, "student-1", workflow.StatusVerified, "certificate")
	saveAchievement(t, repo, "student-2", workflow.StatusPending, "competition")

	achievements, err := repo.FindByOwner("student-1")
	require.NoError(t, err)
	assert.Len(t, achievements, 2)
	for _, a := range achievements {
		assert.Equal(t, "student-1", a.OwnerID)
	}
}

// TestAchievementFindByFilter 组合过滤
func TestAchievementFindByFilter(t *testing.T) {
	repo := repository.NewAchievementRepository(setupTestDB(t))

	saveAchievement(t, repo, "student-1", workflow.StatusPending, "competition")
	saveAchievement(t, repo, "student-1", workflow.StatusVerified, "competition")
	saveAchievement(t, repo, "student-2", workflow.StatusPending, "certificate")

	status := string(workflow.StatusPending)
	results, err := repo.FindByFilter(&repository.AchievementFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	category := "competition"
	owner := "student-1"
	results, err = repo.FindByFilter(&repository.AchievementFilter{
		Status:   &status,
		Category: &category,
		OwnerID:  &owner,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "student-1", results[0].OwnerID)
}

// TestAchievementFilterRejectsUnsafeSort 非法排序字段回退到默认排序
func TestAchievementFilterRejectsUnsafeSort(t *testing.T) {
	repo := repository.NewAchievementRepository(setupTestDB(t))

	saveAchievement(t, repo, "student-1", workflow.StatusPending, "competition")

	// SQL 关键字作为排序字段被白名单校验拒绝,查询回退默认排序
	results, err := repo.FindByFilter(&repository.AchievementFilter{
		SortField: "delete",
		SortOrder: "desc; DROP TABLE achievements",
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

// TestAchievementCountByStatus 按状态统计
func TestAchievementCountByStatus(t *testing.T) {
	repo := repository.NewAchievementRepository(setupTestDB(t))

	saveAchievement(t, repo, "student-1", workflow.StatusPending, "competition")
	saveAchievement(t, repo, "student-2", workflow.StatusPending, "certificate")
	saveAchievement(t, repo, "student-3", workflow.StatusVerified, "competition")

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[string(workflow.StatusPending)])
	assert.Equal(t, int64(1), counts[string(workflow.StatusVerified)])
	assert.Zero(t, counts[string(workflow.StatusRejected)])
}
