package controller

import (
	"smart_quiz_backend/internal/service"
	"smart_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// ListCategories godoc
// @Summary 分类列表
// @Description 名称按语言返回；登录用户附带每个分类的已答对数量
// @Tags 分类
// @Produce  json
// @Param   language query string false "uz / ru / en"
// @Success 200 {object} util.Response{data=util.ListResponse} "成功"
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	views, lang, err := c.CategoryService.ListForUser(ctx.Request.Context(), ctx.Query("language"), util.CurrentUserID(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.ListResponse{
		Count:    len(views),
		Language: string(lang),
		List:     views,
	})
}

// AdminListCategories godoc
// @Summary 分类列表（管理端，三语名称）
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=util.ListResponse} "成功"
// @Router /api/admin/categories [get]
func (c *CategoryController) AdminListCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.ListAll(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.ListResponse{
		Count: len(categories),
		List:  categories,
	})
}
