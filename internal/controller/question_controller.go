package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/service"
	"smart_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	ProgressService *service.ProgressService
}

func NewQuestionController(questionService *service.QuestionService, progressService *service.ProgressService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		ProgressService: progressService,
	}
}

// QuestionRequest 管理员提交的题目（JSON 形式）；multipart 时 options 是 JSON 字符串
// swagger:model QuestionRequest
type QuestionRequest struct {
	CategoryID string             `json:"categoryId"`
	Question   string             `json:"question"`
	Options    []model.BaseOption `json:"options"`
}

// AnswerRequest 提交答案
// swagger:model AnswerRequest
type AnswerRequest struct {
	QuestionID          string `json:"questionId" binding:"required"`
	SelectedOptionIndex *int   `json:"selectedOptionIndex" binding:"required"`
}

// ListUnsolved godoc
// @Summary 获取分类下未答对的题目
// @Description 不返回正确答案；语言优先级：参数 > 用户偏好 > uz
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   categoryId path string true "分类ID"
// @Param   language query string false "uz / ru / en"
// @Success 200 {object} util.Response{data=util.ListResponse} "成功"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/questions/{categoryId} [get]
func (c *QuestionController) ListUnsolved(ctx *gin.Context) {
	views, lang, err := c.QuestionService.ListUnsolved(
		ctx.Request.Context(),
		ctx.Param("categoryId"),
		util.CurrentUserID(ctx),
		ctx.Query("language"),
	)
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

// SubmitAnswer godoc
// @Summary 提交答案
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AnswerRequest true "题目ID与选项下标"
// @Success 200 {object} util.Response{data=model.AnswerOutcome} "成功"
// @Failure 400 {object} util.Response "选项下标不合法"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/answer [post]
func (c *QuestionController) SubmitAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.ProgressService.SubmitAnswer(ctx.Request.Context(), util.CurrentUserID(ctx), req.QuestionID, *req.SelectedOptionIndex)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 只需提交 uz 内容，ru / en 自动翻译；支持 multipart 上传图片
// @Tags 管理
// @Accept  json,mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuestionRequest true "题目"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	in, err := bindQuestionInput(ctx)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	question, err := c.QuestionService.Create(ctx.Request.Context(), in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary 题目列表（管理端，含答案）
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   categoryId query string false "分类ID"
// @Success 200 {object} util.Response{data=util.ListResponse} "成功"
// @Router /api/admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.List(ctx.Request.Context(), ctx.Query("categoryId"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.ListResponse{
		Count: len(questions),
		List:  questions,
	})
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Description 整体替换并重新翻译；未上传图片时保留原图
// @Tags 管理
// @Accept  json,mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   body body QuestionRequest true "题目"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	in, err := bindQuestionInput(ctx)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	question, err := c.QuestionService.Update(ctx.Request.Context(), ctx.Param("id"), in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": ctx.Param("id")})
}

func bindQuestionInput(ctx *gin.Context) (service.QuestionInput, error) {
	var in service.QuestionInput

	if !strings.HasPrefix(ctx.ContentType(), "multipart/") {
		var req QuestionRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return in, fmt.Errorf("%w: %v", util.ErrValidation, err)
		}
		in.CategoryID = req.CategoryID
		in.Text = req.Question
		in.Options = req.Options
		return in, nil
	}

	in.CategoryID = ctx.PostForm("categoryId")
	in.Text = ctx.PostForm("question")
	if raw := ctx.PostForm("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Options); err != nil {
			return in, fmt.Errorf("%w: options must be a JSON array", util.ErrValidation)
		}
	}

	file, err := ctx.FormFile("image")
	switch {
	case err == nil:
		in.Image = file
	case errors.Is(err, http.ErrMissingFile):
	default:
		return in, fmt.Errorf("%w: %v", util.ErrInvalidImage, err)
	}
	return in, nil
}
