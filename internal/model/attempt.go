package model

import "time"

// AttemptState 用户与题目之间的答题状态
type AttemptState uint8

const (
	Unattempted AttemptState = iota
	AttemptedIncorrect
	AttemptedCorrect
)

func (s AttemptState) String() string {
	switch s {
	case AttemptedIncorrect:
		return "attempted-incorrect"
	case AttemptedCorrect:
		return "attempted-correct"
	}
	return "unattempted"
}

// NextAttemptState 状态只会前进：attempted-correct 是终态
func NextAttemptState(current AttemptState, correct bool) AttemptState {
	switch {
	case current == AttemptedCorrect:
		return AttemptedCorrect
	case correct:
		return AttemptedCorrect
	case current == Unattempted:
		return AttemptedIncorrect
	}
	return current
}

// QuestionAttempt 一行代表用户答过的一道题；correct=true 的行构成“正确解答”集合
type QuestionAttempt struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_question" json:"userId"`
	QuestionID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_question;index" json:"questionId"`
	Correct    bool      `gorm:"not null;default:false;index" json:"correct"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}

func (a *QuestionAttempt) State() AttemptState {
	if a == nil {
		return Unattempted
	}
	if a.Correct {
		return AttemptedCorrect
	}
	return AttemptedIncorrect
}

// AnswerOutcome 一次提交后的结果
type AnswerOutcome struct {
	IsCorrect          bool       `json:"isCorrect"`
	AlreadySolved      bool       `json:"alreadySolved"`
	CorrectAnswerCount int        `json:"correctAnswerCount"`
	StatusTier         StatusTier `json:"statusTier"`
	SolvedCount        int        `json:"solvedQuestionsCount"`
}

// CategoryView 学习者看到的分类
type CategoryView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OriginName     string `json:"origin_name"`
	QuestionCount  int64  `json:"questionsCount"`
	CompletedCount int64  `json:"completedCount"`
	Order          int    `json:"order"`
}
