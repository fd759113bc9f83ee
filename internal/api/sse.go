package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elan026/student-360/internal/auth"
	"github.com/elan026/student-360/internal/service"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/gin-gonic/gin"
)

const (
	ssePollInterval      = 3 * time.Second
	sseHeartbeatInterval = 30 * time.Second
)

// SSEHandler 成果状态 SSE 流
// 浏览器 EventSource 不支持自定义 Header,token 通过 query 参数传递;
// 状态变化通过轮询检测,连接期间状态每变化一次推送一个 status 事件
func SSEHandler(validator *auth.KeycloakTokenValidator, achievementSvc service.AchievementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		role, err := auth.RoleFromClaims(claims)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no recognized role"})
			c.Abort()
			return
		}

		achievementID := c.Param("id")
		achievement, err := achievementSvc.Get(c.Request.Context(), achievementID, claims.Sub, role)
		if err != nil {
			RenderError(c, err)
			c.Abort()
			return
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no") // 禁用 Nginx 缓冲

		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
			c.Abort()
			return
		}

		if err := sendSSEEvent(c.Writer, map[string]interface{}{
			"type":           "connected",
			"achievement_id": achievementID,
			"status":         achievement.Status,
			"time":           time.Now().Unix(),
		}); err != nil {
			return
		}
		flusher.Flush()

		lastStatus := achievement.Status
		poll := time.NewTicker(ssePollInterval)
		defer poll.Stop()
		heartbeat := time.NewTicker(sseHeartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-c.Request.Context().Done():
				return

			case <-poll.C:
				current, err := achievementSvc.Get(c.Request.Context(), achievementID, claims.Sub, role)
				if err != nil {
					if workflow.IsKind(err, workflow.KindStoreUnavailable) {
						// 瞬时存储故障,下一轮重试
						continue
					}
					return
				}
				if current.Status == lastStatus {
					continue
				}
				lastStatus = current.Status
				if err := sendSSEEvent(c.Writer, map[string]interface{}{
					"type":           "status_change",
					"achievement_id": achievementID,
					"status":         current.Status,
					"time":           time.Now().Unix(),
				}); err != nil {
					return
				}
				flusher.Flush()

			case <-heartbeat.C:
				if err := sendSSEEvent(c.Writer, map[string]interface{}{
					"type":           "heartbeat",
					"achievement_id": achievementID,
					"time":           time.Now().Unix(),
				}); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

// sendSSEEvent 发送 SSE 消息,格式 data: <json>\n\n
func sendSSEEvent(w io.Writer, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
