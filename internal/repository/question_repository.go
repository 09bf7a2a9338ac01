package repository

import (
	"context"
	"errors"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Save(question).Error
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Question{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrQuestionNotFound
	}
	return nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// List categoryID 为空时返回全部题目
func (r *QuestionRepository) List(ctx context.Context, categoryID string) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.WithContext(ctx).Order("created_at DESC")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	err := query.Find(&questions).Error
	return questions, err
}

// ListUnsolved 只排除用户已答对的题目，答错的题目仍会返回
func (r *QuestionRepository) ListUnsolved(ctx context.Context, categoryID, userID string) ([]model.Question, error) {
	solved := r.DB.Model(&model.QuestionAttempt{}).
		Select("question_id").
		Where("user_id = ? AND correct = ?", userID, true)

	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Where("id NOT IN (?)", solved).
		Order("created_at ASC").
		Find(&questions).Error
	return questions, err
}
