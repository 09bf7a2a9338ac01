package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"
	"smart_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuestionInput 管理员只提交 uz 基础语言的内容
type QuestionInput struct {
	CategoryID string
	Text       string
	Options    []model.BaseOption
	Image      *multipart.FileHeader
}

type QuestionService struct {
	Questions  QuestionStore
	Categories CategoryStore
	Users      UserStore
	Translator *QuestionTranslator
	Images     ImageStore
}

func NewQuestionService(questions QuestionStore, categories CategoryStore, users UserStore, translator *QuestionTranslator, images ImageStore) *QuestionService {
	return &QuestionService{
		Questions:  questions,
		Categories: categories,
		Users:      users,
		Translator: translator,
		Images:     images,
	}
}

func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*model.Question, error) {
	in, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	translated := s.Translator.Translate(ctx, in.Text, in.Options)
	question := &model.Question{
		CategoryID: in.CategoryID,
		Text:       translated.Text,
		Options:    translated.Options,
	}

	if in.Image != nil {
		url, err := s.Images.UploadImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		question.Image = url
	}

	if err := s.Questions.Create(ctx, question); err != nil {
		s.discardImage(ctx, question.Image)
		return nil, err
	}

	logger.Log.Info("Question created",
		zap.String("question_id", question.ID),
		zap.String("category_id", question.CategoryID),
	)
	return question, nil
}

// Update 整体替换题目内容并重新翻译；未上传新图片时保留原图
func (s *QuestionService) Update(ctx context.Context, id string, in QuestionInput) (*model.Question, error) {
	question, err := s.Questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in, err = s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	translated := s.Translator.Translate(ctx, in.Text, in.Options)

	oldImage := question.Image
	newImage := ""
	if in.Image != nil {
		newImage, err = s.Images.UploadImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		question.Image = newImage
	}

	question.CategoryID = in.CategoryID
	question.Text = translated.Text
	question.Options = translated.Options

	if err := s.Questions.Update(ctx, question); err != nil {
		s.discardImage(ctx, newImage)
		return nil, err
	}

	if newImage != "" && oldImage != "" && oldImage != newImage {
		s.discardImage(ctx, oldImage)
	}
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	question, err := s.Questions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Questions.Delete(ctx, id); err != nil {
		return err
	}
	s.discardImage(ctx, question.Image)
	return nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	return s.Questions.FindByID(ctx, id)
}

// List 管理端列表，包含正确答案
func (s *QuestionService) List(ctx context.Context, categoryID string) ([]model.Question, error) {
	return s.Questions.List(ctx, strings.TrimSpace(categoryID))
}

// ListUnsolved 学习端列表：排除已答对的题目，按语言投影并去掉正确答案标记。
// 语言优先级：请求参数 > 用户偏好 > uz。
func (s *QuestionService) ListUnsolved(ctx context.Context, categoryID, userID, language string) ([]model.QuestionView, model.Language, error) {
	exists, err := s.Categories.Exists(ctx, categoryID)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		return nil, "", util.ErrCategoryNotFound
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	lang := model.ResolveLanguage(language, user.PreferredLanguage())

	questions, err := s.Questions.ListUnsolved(ctx, categoryID, userID)
	if err != nil {
		return nil, "", err
	}

	views := make([]model.QuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, questions[i].ViewFor(lang))
	}
	return views, lang, nil
}

func (s *QuestionService) validate(ctx context.Context, in QuestionInput) (QuestionInput, error) {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Text = strings.TrimSpace(in.Text)
	options := make([]model.BaseOption, len(in.Options))
	for i, opt := range in.Options {
		options[i] = model.BaseOption{Text: strings.TrimSpace(opt.Text), IsCorrect: opt.IsCorrect}
	}
	in.Options = options

	if in.CategoryID == "" {
		return in, fmt.Errorf("%w: categoryId is required", util.ErrValidation)
	}
	if err := model.ValidateBaseInput(in.Text, in.Options); err != nil {
		return in, err
	}

	exists, err := s.Categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return in, err
	}
	if !exists {
		return in, util.ErrCategoryNotFound
	}

	// 图片必须在翻译之前校验
	if in.Image != nil {
		if _, err := util.ValidateImageFile(in.Image); err != nil {
			return in, err
		}
	}
	return in, nil
}

// discardImage 清理失败只记录日志
func (s *QuestionService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.Images.DeleteByURL(ctx, url); err != nil {
		logger.Log.Warn("Failed to delete question image", zap.String("url", url), zap.Error(err))
	}
}
