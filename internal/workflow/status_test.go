package workflow_test

import (
	"testing"

	"github.com/elan026/student-360/internal/workflow"
	"github.com/stretchr/testify/assert"
)

// TestCanTransition 验证状态机转换表
func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from workflow.Status
		to   workflow.Status
	}{
		{workflow.StatusPending, workflow.StatusUnderReview},
		{workflow.StatusPending, workflow.StatusRejected},
		{workflow.StatusUnderReview, workflow.StatusVerified},
		{workflow.StatusUnderReview, workflow.StatusRejected},
		{workflow.StatusRejected, workflow.StatusPending},
	}
	for _, tc := range allowed {
		assert.True(t, workflow.CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from workflow.Status
		to   workflow.Status
	}{
		{workflow.StatusPending, workflow.StatusVerified},
		{workflow.StatusVerified, workflow.StatusPending},
		{workflow.StatusVerified, workflow.StatusUnderReview},
		{workflow.StatusVerified, workflow.StatusRejected},
		{workflow.StatusRejected, workflow.StatusVerified},
		{workflow.StatusRejected, workflow.StatusUnderReview},
		{workflow.StatusUnderReview, workflow.StatusPending},
	}
	for _, tc := range denied {
		assert.False(t, workflow.CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

// TestIsTerminal 验证 verified 是唯一终态
func TestIsTerminal(t *testing.T) {
	assert.True(t, workflow.IsTerminal(workflow.StatusVerified))
	assert.False(t, workflow.IsTerminal(workflow.StatusPending))
	assert.False(t, workflow.IsTerminal(workflow.StatusUnderReview))
	assert.False(t, workflow.IsTerminal(workflow.StatusRejected))
}

// TestRequiresComment 验证拒绝必须携带评论
func TestRequiresComment(t *testing.T) {
	assert.True(t, workflow.RequiresComment(workflow.StatusUnderReview, workflow.StatusRejected))
	assert.True(t, workflow.RequiresComment(workflow.StatusPending, workflow.StatusRejected))
	assert.False(t, workflow.RequiresComment(workflow.StatusPending, workflow.StatusUnderReview))
	assert.False(t, workflow.RequiresComment(workflow.StatusUnderReview, workflow.StatusVerified))
	assert.False(t, workflow.RequiresComment(workflow.StatusRejected, workflow.StatusPending))
}

// TestOwnerOnly 验证重新提交只允许拥有者执行
func TestOwnerOnly(t *testing.T) {
	assert.True(t, workflow.OwnerOnly(workflow.StatusRejected, workflow.StatusPending))
	assert.False(t, workflow.OwnerOnly(workflow.StatusPending, workflow.StatusUnderReview))
}

// TestAllowedRoles 验证各转换的角色要求
func TestAllowedRoles(t *testing.T) {
	roles := workflow.AllowedRoles(workflow.StatusPending, workflow.StatusUnderReview)
	assert.ElementsMatch(t, []workflow.Role{workflow.RoleFaculty, workflow.RoleAdmin}, roles)

	roles = workflow.AllowedRoles(workflow.StatusRejected, workflow.StatusPending)
	assert.ElementsMatch(t, []workflow.Role{workflow.RoleStudent}, roles)

	assert.Empty(t, workflow.AllowedRoles(workflow.StatusVerified, workflow.StatusPending))
}

// TestValidStatus 验证状态合法性检查
func TestValidStatus(t *testing.T) {
	for _, s := range []workflow.Status{
		workflow.StatusPending, workflow.StatusUnderReview,
		workflow.StatusVerified, workflow.StatusRejected,
	} {
		assert.True(t, workflow.ValidStatus(s))
	}
	assert.False(t, workflow.ValidStatus(workflow.Status("archived")))
	assert.False(t, workflow.ValidStatus(workflow.Status("")))
}

// TestValidRole 验证角色合法性检查
func TestValidRole(t *testing.T) {
	assert.True(t, workflow.ValidRole(workflow.RoleStudent))
	assert.True(t, workflow.ValidRole(workflow.RoleFaculty))
	assert.True(t, workflow.ValidRole(workflow.RoleAdmin))
	assert.False(t, workflow.ValidRole(workflow.Role("parent")))
}
