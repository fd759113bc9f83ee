package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elan026/student-360/internal/auth"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsWithRoles(roles ...string) *auth.KeycloakClaims {
	claims := &auth.KeycloakClaims{}
	claims.RealmAccess.Roles = roles
	return claims
}

// TestRoleFromClaims 角色映射和优先级: admin > faculty > student
func TestRoleFromClaims(t *testing.T) {
	role, err := auth.RoleFromClaims(claimsWithRoles("student"))
	require.NoError(t, err)
	assert.Equal(t, workflow.RoleStudent, role)

	role, err = auth.RoleFromClaims(claimsWithRoles("faculty", "student"))
	require.NoError(t, err)
	assert.Equal(t, workflow.RoleFaculty, role)

	role, err = auth.RoleFromClaims(claimsWithRoles("student", "admin", "faculty"))
	require.NoError(t, err)
	assert.Equal(t, workflow.RoleAdmin, role)

	// Keycloak 内建角色被忽略
	_, err = auth.RoleFromClaims(claimsWithRoles("offline_access", "uma_authorization"))
	assert.ErrorIs(t, err, auth.ErrNoRecognizedRole)

	_, err = auth.RoleFromClaims(claimsWithRoles())
	assert.ErrorIs(t, err, auth.ErrNoRecognizedRole)
}

// TestRequireRoles 角色门禁中间件
func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/review",
		func(c *gin.Context) { c.Set("role", c.GetHeader("X-Test-Role")); c.Next() },
		auth.RequireRoles(workflow.RoleFaculty, workflow.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	cases := []struct {
		role string
		want int
	}{
		{"faculty", http.StatusOK},
		{"admin", http.StatusOK},
		{"student", http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/review", nil)
		req.Header.Set("X-Test-Role", tc.role)
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "role %q", tc.role)
	}
}
