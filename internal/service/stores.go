package service

import (
	"context"
	"mime/multipart"

	"smart_quiz_backend/internal/model"
)

// 服务层依赖的存储接口，由 internal/repository 实现，测试中使用内存实现

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateLanguage(ctx context.Context, id string, lang model.Language) error
	UpdateMode(ctx context.Context, id string, mode model.UserMode) error
	UpdateTier(ctx context.Context, id string, tier model.StatusTier) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, category *model.Category) error
	UpdateName(ctx context.Context, id string, name model.LocalizedText) error
	QuestionCounts(ctx context.Context) (map[string]int64, error)
	CompletedCounts(ctx context.Context, userID string) (map[string]int64, error)
}

type QuestionStore interface {
	Create(ctx context.Context, question *model.Question) error
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	List(ctx context.Context, categoryID string) ([]model.Question, error)
	ListUnsolved(ctx context.Context, categoryID, userID string) ([]model.Question, error)
}

type ProgressStore interface {
	SolvedCount(ctx context.Context, userID string) (int64, error)
	RecordAnswer(ctx context.Context, userID, questionID string, correct bool) (*model.AnswerOutcome, error)
}

// TextTranslator 由 pkg/translator.Chain 实现，永不返回错误
type TextTranslator interface {
	Translate(ctx context.Context, text, source, target string) string
}

// ImageStore 题目图片的上传与删除
type ImageStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}
