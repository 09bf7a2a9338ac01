package controller

import (
	"smart_quiz_backend/internal/service"
	"smart_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 管理端用户操作
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ModeRequest swagger:model ModeRequest
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// GetUser godoc
// @Summary 查看用户
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response{data=service.Profile} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	profile, err := c.UserService.Profile(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// SetMode godoc
// @Summary 修改用户模式
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Param   body body ModeRequest true "basic / premium"
// @Success 200 {object} util.Response{data=service.Profile} "成功"
// @Router /api/admin/users/{id}/mode [put]
func (c *UserController) SetMode(ctx *gin.Context) {
	var req ModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.RespondError(ctx, util.ErrInvalidMode)
		return
	}

	profile, err := c.UserService.SetMode(ctx.Request.Context(), ctx.Param("id"), req.Mode)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
