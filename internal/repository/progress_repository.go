package repository

import (
	"context"
	"errors"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// SolvedCount 用户答过（无论对错）的题目数量
func (r *ProgressRepository) SolvedCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuestionAttempt{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// RecordAnswer 在同一个事务里完成读-改-写：先锁住用户行，
// 答对时用条件更新或 ON CONFLICT DO NOTHING 保证同一道题只计数一次。
func (r *ProgressRepository) RecordAnswer(ctx context.Context, userID, questionID string, correct bool) (*model.AnswerOutcome, error) {
	var outcome model.AnswerOutcome

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userID).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		var existing model.QuestionAttempt
		var current *model.QuestionAttempt
		// 首次作答没有记录是正常情况，用 Find 避免记录 record not found 日志
		found := tx.Where("user_id = ? AND question_id = ?", userID, questionID).Limit(1).Find(&existing)
		if found.Error != nil {
			return found.Error
		}
		if found.RowsAffected == 1 {
			current = &existing
		}

		state := current.State()
		next := model.NextAttemptState(state, correct)
		outcome.AlreadySolved = state == model.AttemptedCorrect
		outcome.IsCorrect = correct || outcome.AlreadySolved

		newlyCorrect := false
		switch {
		case state == next:
		case state == model.Unattempted:
			attempt := model.QuestionAttempt{
				UserID:     userID,
				QuestionID: questionID,
				Correct:    next == model.AttemptedCorrect,
			}
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&attempt)
			if result.Error != nil {
				return result.Error
			}
			newlyCorrect = attempt.Correct && result.RowsAffected == 1
		case next == model.AttemptedCorrect:
			result := tx.Model(&model.QuestionAttempt{}).
				Where("user_id = ? AND question_id = ? AND correct = ?", userID, questionID, false).
				Update("correct", true)
			if result.Error != nil {
				return result.Error
			}
			newlyCorrect = result.RowsAffected == 1
		}

		if newlyCorrect {
			user.CorrectAnswerCount++
			user.RefreshTier()
			err = tx.Model(&model.User{}).
				Where("id = ?", userID).
				Updates(map[string]interface{}{
					"correct_answer_count": gorm.Expr("correct_answer_count + ?", 1),
					"status_tier":          user.StatusTier,
				}).Error
			if err != nil {
				return err
			}
		} else if user.RefreshTier() {
			if err := tx.Model(&model.User{}).Where("id = ?", userID).Update("status_tier", user.StatusTier).Error; err != nil {
				return err
			}
		}

		var solved int64
		if err := tx.Model(&model.QuestionAttempt{}).Where("user_id = ?", userID).Count(&solved).Error; err != nil {
			return err
		}

		outcome.CorrectAnswerCount = user.CorrectAnswerCount
		outcome.StatusTier = user.StatusTier
		outcome.SolvedCount = int(solved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
