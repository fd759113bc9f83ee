package api

import (
	"errors"
	"net/http"

	"github.com/elan026/student-360/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileController 用户档案控制器
type ProfileController struct {
	profileRepo repository.ProfileRepository
}

// NewProfileController 创建用户档案控制器
func NewProfileController(profileRepo repository.ProfileRepository) *ProfileController {
	return &ProfileController{
		profileRepo: profileRepo,
	}
}

// Me 获取当前用户档案
// @Summary      获取当前用户档案
// @Description  返回登录用户在平台内的档案
// @Tags         用户档案
// @Produce      json
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/me [get]
// @Security     BearerAuth
func (c *ProfileController) Me(ctx *gin.Context) {
	userID := ctx.GetString("user_id")

	profile, err := c.profileRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(ctx, http.StatusNotFound, "profile not found", "")
			return
		}
		Error(ctx, http.StatusServiceUnavailable, "failed to load profile", err.Error())
		return
	}

	Success(ctx, profile)
}
