package api

import (
	"net/http"

	"github.com/elan026/student-360/internal/auth"
	"github.com/elan026/student-360/internal/service"
	"github.com/elan026/student-360/internal/utils"
	"github.com/gin-gonic/gin"
)

// AchievementController 成果控制器
type AchievementController struct {
	achievementService service.AchievementService
}

// NewAchievementController 创建成果控制器
func NewAchievementController(achievementService service.AchievementService) *AchievementController {
	return &AchievementController{
		achievementService: achievementService,
	}
}

// validateAchievementID 验证成果 ID 并返回错误响应（如果无效）
func (c *AchievementController) validateAchievementID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateAchievementID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid achievement ID", err.Error())
		return false
	}
	return true
}

// actor 从请求上下文取操作者身份
func (c *AchievementController) actor(ctx *gin.Context) service.Actor {
	id, role, name := auth.CallerFromContext(ctx)
	return service.Actor{ID: id, Role: role, Name: name}
}

// Create 创建成果
// @Summary      创建学生成果
// @Description  学生提交新成果,初始状态为 pending
// @Tags         成果管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateAchievementRequest true "成果信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /achievements [post]
// @Security     BearerAuth
func (c *AchievementController) Create(ctx *gin.Context) {
	var req service.CreateAchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor := c.actor(ctx)
	achievement, err := c.achievementService.Create(ctx.Request.Context(), actor.ID, &req)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Created(ctx, achievement)
}

// List 查询成果列表
// @Summary      查询成果列表
// @Description  学生只看到自己的成果,审核角色可以按状态/类别/拥有者过滤
// @Tags         成果管理
// @Produce      json
// @Param        status    query string false "状态过滤"
// @Param        category  query string false "类别过滤"
// @Param        owner_id  query string false "拥有者过滤(仅审核角色)"
// @Param        sort      query string false "排序字段"
// @Param        order     query string false "排序方向 asc/desc"
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /achievements [get]
// @Security     BearerAuth
func (c *AchievementController) List(ctx *gin.Context) {
	actor := c.actor(ctx)
	query := &service.ListAchievementsQuery{
		Status:    ctx.Query("status"),
		Category:  ctx.Query("category"),
		OwnerID:   ctx.Query("owner_id"),
		SortField: ctx.Query("sort"),
		SortOrder: ctx.Query("order"),
	}

	achievements, err := c.achievementService.List(ctx.Request.Context(), actor.ID, actor.Role, query)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, achievements)
}

// Get 获取成果详情
// @Summary      获取成果详情
// @Description  根据 ID 获取成果详情
// @Tags         成果管理
// @Produce      json
// @Param        id path string true "成果 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /achievements/{id} [get]
// @Security     BearerAuth
func (c *AchievementController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAchievementID(ctx, id) {
		return
	}

	actor := c.actor(ctx)
	achievement, err := c.achievementService.Get(ctx.Request.Context(), id, actor.ID, actor.Role)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, achievement)
}

// UpdateContent 编辑成果内容
// @Summary      编辑成果内容
// @Description  只有拥有者可以编辑,且仅限 pending 或 rejected 状态
// @Tags         成果管理
// @Accept       json
// @Produce      json
// @Param        id path string true "成果 ID"
// @Param        request body service.UpdateContentRequest true "编辑字段"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /achievements/{id} [patch]
// @Security     BearerAuth
func (c *AchievementController) UpdateContent(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAchievementID(ctx, id) {
		return
	}

	var req service.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor := c.actor(ctx)
	achievement, err := c.achievementService.UpdateContent(ctx.Request.Context(), id, actor.ID, &req)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, achievement)
}

// UpdateStatus 变更成果状态
// @Summary      变更成果状态
// @Description  审核角色推进状态机,拒绝必须携带审核意见
// @Tags         成果管理
// @Accept       json
// @Produce      json
// @Param        id path string true "成果 ID"
// @Param        request body service.UpdateStatusRequest true "目标状态和意见"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /achievements/{id}/status [post]
// @Security     BearerAuth
func (c *AchievementController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAchievementID(ctx, id) {
		return
	}

	var req service.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	achievement, err := c.achievementService.UpdateStatus(ctx.Request.Context(), id, c.actor(ctx), &req)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, achievement)
}

// Resubmit 重新提交被拒绝的成果
// @Summary      重新提交成果
// @Description  拥有者将 rejected 状态的成果重新置为 pending
// @Tags         成果管理
// @Produce      json
// @Param        id path string true "成果 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /achievements/{id}/resubmit [post]
// @Security     BearerAuth
func (c *AchievementController) Resubmit(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAchievementID(ctx, id) {
		return
	}

	achievement, err := c.achievementService.Resubmit(ctx.Request.Context(), id, c.actor(ctx))
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, achievement)
}

// GetHistory 获取成果审核历史
// @Summary      获取审核历史
// @Description  按时间倒序返回成果的全部状态变更记录
// @Tags         成果管理
// @Produce      json
// @Param        id path string true "成果 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /achievements/{id}/history [get]
// @Security     BearerAuth
func (c *AchievementController) GetHistory(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAchievementID(ctx, id) {
		return
	}

	actor := c.actor(ctx)
	history, err := c.achievementService.GetHistory(ctx.Request.Context(), id, actor.ID, actor.Role)
	if err != nil {
		RenderError(ctx, err)
		return
	}

	Success(ctx, history)
}
