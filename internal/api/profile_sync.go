package api

import (
	"time"

	"github.com/elan026/student-360/internal/model"
	"github.com/elan026/student-360/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileSyncMiddleware 用户档案同步中间件
// 身份来自 Keycloak,平台本地只保留一份投影;每次认证请求后
// 把 token 中的身份信息 upsert 到 profiles 表,同步失败不阻断请求
func ProfileSyncMiddleware(profileRepo repository.ProfileRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID != "" {
			now := time.Now().UTC()
			profile := &model.ProfileModel{
				ID:        userID,
				Name:      c.GetString("name"),
				Email:     c.GetString("email"),
				Role:      c.GetString("role"),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := profileRepo.Upsert(profile); err != nil {
				logger.WithField("user_id", userID).WithError(err).Warn("failed to sync profile")
			}
		}

		c.Next()
	}
}
