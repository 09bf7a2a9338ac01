package repository

import (
	"context"
	"testing"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_RecordAnswerSequence(t *testing.T) {
	db := newTestDB(t, nil)
	ctx := context.Background()
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "learner@example.com", 0)
	cat := seedCategory(t, db, "Fan", 1)
	q := seedQuestion(t, db, cat.ID, "Suv formulasi?")

	steps := []struct {
		correct       bool
		isCorrect     bool
		alreadySolved bool
		count         int
	}{
		{correct: false, isCorrect: false, alreadySolved: false, count: 0},
		{correct: false, isCorrect: false, alreadySolved: false, count: 0},
		{correct: true, isCorrect: true, alreadySolved: false, count: 1},
		{correct: true, isCorrect: true, alreadySolved: true, count: 1},
		{correct: false, isCorrect: true, alreadySolved: true, count: 1},
	}
	for i, step := range steps {
		outcome, err := repo.RecordAnswer(ctx, user.ID, q.ID, step.correct)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.isCorrect, outcome.IsCorrect, "step %d", i)
		assert.Equal(t, step.alreadySolved, outcome.AlreadySolved, "step %d", i)
		assert.Equal(t, step.count, outcome.CorrectAnswerCount, "step %d", i)
		assert.Equal(t, 1, outcome.SolvedCount, "step %d", i)
	}

	stored, err := NewUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CorrectAnswerCount)

	var attempts []model.QuestionAttempt
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Correct)

	solved, err := repo.SolvedCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, solved)
}

func TestProgressRepository_RecordAnswerPromotesTier(t *testing.T) {
	db := newTestDB(t, nil)
	ctx := context.Background()
	repo := NewProgressRepository(db)

	user := seedUser(t, db, "learner@example.com", 10)
	cat := seedCategory(t, db, "Fan", 1)
	q := seedQuestion(t, db, cat.ID, "Q")

	outcome, err := repo.RecordAnswer(ctx, user.ID, q.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 11, outcome.CorrectAnswerCount)
	assert.Equal(t, model.TierAdvanced, outcome.StatusTier)

	stored, err := NewUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierAdvanced, stored.StatusTier)
	assert.Equal(t, 11, stored.CorrectAnswerCount)
}

func TestProgressRepository_RecordAnswerUnknownUser(t *testing.T) {
	db := newTestDB(t, nil)
	cat := seedCategory(t, db, "Fan", 1)
	q := seedQuestion(t, db, cat.ID, "Q")

	_, err := NewProgressRepository(db).RecordAnswer(context.Background(), "missing", q.ID, true)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestProgressRepository_FirstAnswerLogsNoMissingRecord(t *testing.T) {
	log := newCountingLogger()
	db := newTestDB(t, log)
	ctx := context.Background()

	user := seedUser(t, db, "learner@example.com", 0)
	cat := seedCategory(t, db, "Fan", 1)
	first := seedQuestion(t, db, cat.ID, "Q1")
	second := seedQuestion(t, db, cat.ID, "Q2")

	repo := NewProgressRepository(db)
	_, err := repo.RecordAnswer(ctx, user.ID, first.ID, false)
	require.NoError(t, err)
	_, err = repo.RecordAnswer(ctx, user.ID, second.ID, true)
	require.NoError(t, err)

	assert.Zero(t, log.NotFound())
}
