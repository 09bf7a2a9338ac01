package service

import (
	"context"

	"smart_quiz_backend/internal/model"

	"golang.org/x/sync/errgroup"
)

const defaultTranslationConcurrency = 10

// TranslatedQuestion 三语题干与选项，uz 槽位始终是原始输入
type TranslatedQuestion struct {
	Text    model.LocalizedText
	Options []model.Option
}

type QuestionTranslator struct {
	translator TextTranslator
	limit      int
}

func NewQuestionTranslator(translator TextTranslator, limit int) *QuestionTranslator {
	if limit <= 0 {
		limit = defaultTranslationConcurrency
	}
	return &QuestionTranslator{translator: translator, limit: limit}
}

// Translate 对题干和每个选项各翻译到 ru、en，共 (1+len(options))*2 次调用，并发执行。
// 翻译失败时对应槽位为原文，不返回错误。
func (t *QuestionTranslator) Translate(ctx context.Context, text string, options []model.BaseOption) TranslatedQuestion {
	result := TranslatedQuestion{
		Text:    model.LocalizedText{UZ: text},
		Options: make([]model.Option, len(options)),
	}
	for i, opt := range options {
		result.Options[i] = model.Option{
			Text:      model.LocalizedText{UZ: opt.Text},
			IsCorrect: opt.IsCorrect,
		}
	}

	var g errgroup.Group
	g.SetLimit(t.limit)

	for _, lang := range model.TargetLanguages {
		lang := lang
		g.Go(func() error {
			result.Text.Set(lang, t.translate(ctx, text, lang))
			return nil
		})
		for i := range options {
			i := i
			g.Go(func() error {
				result.Options[i].Text.Set(lang, t.translate(ctx, options[i].Text, lang))
				return nil
			})
		}
	}
	_ = g.Wait()

	return result
}

// TranslateText 单条文本翻译成三语，用于分类名补全
func (t *QuestionTranslator) TranslateText(ctx context.Context, text string) model.LocalizedText {
	out := model.LocalizedText{UZ: text}

	var g errgroup.Group
	g.SetLimit(t.limit)
	for _, lang := range model.TargetLanguages {
		lang := lang
		g.Go(func() error {
			out.Set(lang, t.translate(ctx, text, lang))
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (t *QuestionTranslator) translate(ctx context.Context, text string, target model.Language) string {
	return t.translator.Translate(ctx, text, string(model.BaseLanguage), string(target))
}
