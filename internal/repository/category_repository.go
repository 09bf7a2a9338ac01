package repository

import (
	"context"
	"errors"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).
		Order("display_order ASC").
		Order("created_at ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

// UpdateName 写回规范化后的三语名称
func (r *CategoryRepository) UpdateName(ctx context.Context, id string, name model.LocalizedText) error {
	return r.DB.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", id).
		Update("name", model.LocalizedName(name)).Error
}

type categoryCount struct {
	CategoryID string
	Total      int64
}

// QuestionCounts 每个分类下的题目数量
func (r *CategoryRepository) QuestionCounts(ctx context.Context) (map[string]int64, error) {
	var rows []categoryCount
	err := r.DB.WithContext(ctx).
		Model(&model.Question{}).
		Select("category_id, COUNT(*) AS total").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// CompletedCounts 用户在每个分类下答对的题目数量
func (r *CategoryRepository) CompletedCounts(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []categoryCount
	err := r.DB.WithContext(ctx).
		Table("question_attempts AS a").
		Select("q.category_id AS category_id, COUNT(*) AS total").
		Joins("JOIN questions AS q ON q.id = a.question_id").
		Where("a.user_id = ? AND a.correct = ?", userID, true).
		Group("q.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func toCountMap(rows []categoryCount) map[string]int64 {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts
}
