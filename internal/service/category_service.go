package service

import (
	"context"
	"errors"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"
	"smart_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// defaultCategories 空库时创建的分类
var defaultCategories = []model.Category{
	{Name: model.LocalizedName(model.LocalizedText{UZ: "Kinolar", RU: "Фильмы", EN: "Movies"}), DisplayOrder: 1},
	{Name: model.LocalizedName(model.LocalizedText{UZ: "Fan", RU: "Наука", EN: "Science"}), DisplayOrder: 2},
	{Name: model.LocalizedName(model.LocalizedText{UZ: "O'yinlar", RU: "Игры", EN: "Games"}), DisplayOrder: 3},
	{Name: model.LocalizedName(model.LocalizedText{UZ: "Futbol", RU: "Футбол", EN: "Football"}), DisplayOrder: 4},
	{Name: model.LocalizedName(model.LocalizedText{UZ: "MMA", RU: "ММА", EN: "MMA"}), DisplayOrder: 5},
	{Name: model.LocalizedName(model.LocalizedText{UZ: "Musiqa", RU: "Музыка", EN: "Music"}), DisplayOrder: 6},
}

type CategoryService struct {
	Categories CategoryStore
	Users      UserStore
	Translator *QuestionTranslator
}

func NewCategoryService(categories CategoryStore, users UserStore, translator *QuestionTranslator) *CategoryService {
	return &CategoryService{
		Categories: categories,
		Users:      users,
		Translator: translator,
	}
}

// ListForUser userID 为空表示匿名访问，completedCount 全为 0
func (s *CategoryService) ListForUser(ctx context.Context, language, userID string) ([]model.CategoryView, model.Language, error) {
	var preferred model.Language
	if userID != "" {
		user, err := s.Users.FindByID(ctx, userID)
		switch {
		case err == nil:
			preferred = user.PreferredLanguage()
		case errors.Is(err, util.ErrUserNotFound):
			userID = ""
		default:
			return nil, "", err
		}
	}
	lang := model.ResolveLanguage(language, preferred)

	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, "", err
	}

	questionCounts, err := s.Categories.QuestionCounts(ctx)
	if err != nil {
		return nil, "", err
	}

	completed := map[string]int64{}
	if userID != "" {
		if completed, err = s.Categories.CompletedCounts(ctx, userID); err != nil {
			return nil, "", err
		}
	}

	views := make([]model.CategoryView, 0, len(categories))
	for _, c := range categories {
		name := c.Name.Text()
		views = append(views, model.CategoryView{
			ID:             c.ID,
			Name:           name.Get(lang),
			OriginName:     name.Get(model.LangEN),
			QuestionCount:  questionCounts[c.ID],
			CompletedCount: completed[c.ID],
			Order:          c.DisplayOrder,
		})
	}
	return views, lang, nil
}

// ListAll 管理端使用，名称以三语对象返回
func (s *CategoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	return s.Categories.List(ctx)
}

// EnsureDefaults 空库时写入默认分类，否则规范化历史分类名
func (s *CategoryService) EnsureDefaults(ctx context.Context) error {
	count, err := s.Categories.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		created, err := s.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		logger.Log.Info("Default categories created", zap.Int("count", created))
		return nil
	}

	updated, err := s.NormalizeLegacyNames(ctx)
	if err != nil {
		return err
	}
	if updated > 0 {
		logger.Log.Info("Legacy category names normalized", zap.Int("count", updated))
	}
	return nil
}

func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	for i := range defaultCategories {
		category := defaultCategories[i]
		if err := s.Categories.Create(ctx, &category); err != nil {
			return i, err
		}
	}
	return len(defaultCategories), nil
}

// NormalizeLegacyNames 把旧格式或不完整的分类名写回为完整三语对象。
// 内置表里没有的旧名称当作 uz 基础文本走翻译链补全。
func (s *CategoryService) NormalizeLegacyNames(ctx context.Context) (int, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, c := range categories {
		if !c.Name.NeedsMigration() {
			continue
		}

		name := c.Name.Normalize()
		if legacy, ok := c.Name.LegacyText(); ok && s.Translator != nil {
			if _, known := model.KnownTranslation(legacy); !known {
				name = s.Translator.TranslateText(ctx, legacy)
			}
		}

		if err := s.Categories.UpdateName(ctx, c.ID, name); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
