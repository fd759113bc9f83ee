package api

import (
	"net/http"

	"github.com/elan026/student-360/internal/service"
	"github.com/elan026/student-360/internal/utils"
	"github.com/gin-gonic/gin"
)

// NotificationController 通知控制器
type NotificationController struct {
	notificationService service.NotificationService
}

// NewNotificationController 创建通知控制器
func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// ListUnread 获取未读通知
// @Summary      获取未读通知
// @Description  按时间倒序返回当前用户的未读通知
// @Tags         通知
// @Produce      json
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
// @Security     BearerAuth
func (c *NotificationController) ListUnread(ctx *gin.Context) {
	recipientID := ctx.GetString("user_id")

	notifications, err := c.notificationService.ListUnread(ctx.Request.Context(), recipientID)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, notifications)
}

// MarkRead 标记通知为已读
// @Summary      标记通知已读
// @Description  只能标记发给自己的通知
// @Tags         通知
// @Produce      json
// @Param        id path string true "通知 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [post]
// @Security     BearerAuth
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateAchievementID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid notification ID", err.Error())
		return
	}

	recipientID := ctx.GetString("user_id")
	if err := c.notificationService.MarkRead(ctx.Request.Context(), id, recipientID); err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, gin.H{"id": id, "is_read": true})
}
