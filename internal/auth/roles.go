package auth

import (
	"errors"
	"net/http"

	"github.com/elan026/student-360/internal/workflow"
	"github.com/gin-gonic/gin"
)

// ErrNoRecognizedRole token 中没有平台已知的角色
var ErrNoRecognizedRole = errors.New("token carries no recognized platform role")

// RoleFromClaims 从 Keycloak realm 角色解析平台角色
// 同时持有多个角色时取权限最高的一个: admin > faculty > student
func RoleFromClaims(claims *KeycloakClaims) (workflow.Role, error) {
	var hasFaculty, hasStudent bool
	for _, r := range claims.RealmAccess.Roles {
		switch workflow.Role(r) {
		case workflow.RoleAdmin:
			return workflow.RoleAdmin, nil
		case workflow.RoleFaculty:
			hasFaculty = true
		case workflow.RoleStudent:
			hasStudent = true
		}
	}
	if hasFaculty {
		return workflow.RoleFaculty, nil
	}
	if hasStudent {
		return workflow.RoleStudent, nil
	}
	return "", ErrNoRecognizedRole
}

// RequireRoles 角色路由门禁中间件
// 只是提前拦截明显无权的请求,真正的授权边界在 workflow.Engine 内部
func RequireRoles(roles ...workflow.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "insufficient role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFromContext 从请求上下文提取操作者信息
func CallerFromContext(c *gin.Context) (actorID string, role workflow.Role, name string) {
	return c.GetString("user_id"), workflow.Role(c.GetString("role")), c.GetString("name")
}
