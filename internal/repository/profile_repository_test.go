package repository_test

import (
	"testing"
	"time"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProfileUpsert 重复 upsert 更新现有档案而不是报错
func TestProfileUpsert(t *testing.T) {
	repo := repository.NewProfileRepository(setupTestDB(t))
	now := time.Now().UTC()

	profile := &model.ProfileModel{
		ID:        "user-1",
		Name:      "Alex Kim",
		Email:     "alex@example.edu",
		Role:      "student",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Upsert(profile))

	// 角色在 Keycloak 侧变化后再次同步
	profile.Role = "faculty"
	profile.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.Upsert(profile))

	loaded, err := repo.FindByID("user-1")
	require.NoError(t, err)
	assert.Equal(t, "faculty", loaded.Role)
	assert.Equal(t, "Alex Kim", loaded.Name)
}

// TestProfileFindByRole 按角色查询
func TestProfileFindByRole(t *testing.T) {
	repo := repository.NewProfileRepository(setupTestDB(t))
	now := time.Now().UTC()

	for _, p := range []*model.ProfileModel{
		{ID: "s1", Name: "Student One", Role: "student", CreatedAt: now, UpdatedAt: now},
		{ID: "s2", Name: "Student Two", Role: "student", CreatedAt: now, UpdatedAt: now},
		{ID: "f1", Name: "Faculty One", Role: "faculty", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, repo.Upsert(p))
	}

	students, err := repo.FindByRole("student")
	require.NoError(t, err)
	assert.Len(t, students, 2)
}
