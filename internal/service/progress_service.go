package service

import (
	"context"
	"fmt"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"
	"smart_quiz_backend/pkg/monitoring"
)

type ProgressService struct {
	Questions QuestionStore
	Progress  ProgressStore
}

func NewProgressService(questions QuestionStore, progress ProgressStore) *ProgressService {
	return &ProgressService{Questions: questions, Progress: progress}
}

// SubmitAnswer 先校验题目存在，再校验选项下标；重复提交已答对的题目不会重复计数
func (s *ProgressService) SubmitAnswer(ctx context.Context, userID, questionID string, selected int) (*model.AnswerOutcome, error) {
	question, err := s.Questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !question.ValidIndex(selected) {
		return nil, fmt.Errorf("%w: must be between 0 and %d", util.ErrInvalidOptionIndex, len(question.Options)-1)
	}

	correct := selected == question.CorrectIndex()
	outcome, err := s.Progress.RecordAnswer(ctx, userID, questionID, correct)
	if err != nil {
		return nil, err
	}

	result := "incorrect"
	switch {
	case outcome.AlreadySolved:
		result = "repeat"
	case outcome.IsCorrect:
		result = "correct"
	}
	monitoring.AnswerSubmissions.WithLabelValues(result).Inc()

	return outcome, nil
}
