package model

import (
	"errors"
	"fmt"
	"strings"
)

// RequiredOptionCount 每道题固定 4 个选项
const RequiredOptionCount = 4

var (
	ErrOptionCount        = errors.New("question must have exactly 4 options")
	ErrCorrectOptionCount = errors.New("exactly one option must be marked as correct")
	ErrEmptyOptionText    = errors.New("option text is required")
	ErrEmptyQuestionText  = errors.New("question text is required")
)

// Option 选项归属题目，没有独立 ID
type Option struct {
	Text      LocalizedText `json:"text"`
	IsCorrect bool          `json:"isCorrect"`
}

// swagger:model Question
type Question struct {
	UUIDBase
	CategoryID string        `gorm:"type:varchar(36);index;not null" json:"categoryId"`
	Text       LocalizedText `gorm:"embedded;embeddedPrefix:question_" json:"question"`
	Options    []Option      `gorm:"type:text;serializer:json;not null" json:"options"`
	Image      string        `gorm:"size:512" json:"image,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectIndex 返回正确选项下标，没有时返回 -1
func (q *Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// ValidIndex 选项下标是否在 [0, len(options)) 内
func (q *Question) ValidIndex(index int) bool {
	return index >= 0 && index < len(q.Options)
}

// Validate 检查已落库形态的题目不变量
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text.UZ) == "" {
		return ErrEmptyQuestionText
	}
	if len(q.Options) != RequiredOptionCount {
		return ErrOptionCount
	}
	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return ErrCorrectOptionCount
	}
	return nil
}

// BaseOption 管理员输入的基础语言选项
type BaseOption struct {
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
}

// ValidateBaseInput 写入前的快速校验，失败时不产生任何副作用
func ValidateBaseInput(text string, options []BaseOption) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyQuestionText
	}
	if len(options) != RequiredOptionCount {
		return fmt.Errorf("%w, got %d", ErrOptionCount, len(options))
	}
	correct := 0
	for i, opt := range options {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("%w (option %d)", ErrEmptyOptionText, i+1)
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("%w, got %d", ErrCorrectOptionCount, correct)
	}
	return nil
}

// QuestionView 面向学习者的题目，不含答案
type QuestionView struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"categoryId"`
	Question   string       `json:"question"`
	Options    []OptionView `json:"options"`
	Image      *string      `json:"image"`
}

type OptionView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ViewFor 投影到指定语言，空槽位回退到 uz，去掉 isCorrect
func (q *Question) ViewFor(lang Language) QuestionView {
	view := QuestionView{
		ID:         q.ID,
		CategoryID: q.CategoryID,
		Question:   q.Text.Get(lang),
		Options:    make([]OptionView, len(q.Options)),
	}
	for i, opt := range q.Options {
		view.Options[i] = OptionView{Index: i, Text: opt.Text.Get(lang)}
	}
	if q.Image != "" {
		img := q.Image
		view.Image = &img
	}
	return view
}
