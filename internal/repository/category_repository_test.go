package repository

import (
	"context"
	"testing"
	"time"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_Counts(t *testing.T) {
	db := newTestDB(t, nil)
	ctx := context.Background()

	user := seedUser(t, db, "learner@example.com", 0)
	science := seedCategory(t, db, "Fan", 1)
	football := seedCategory(t, db, "Futbol", 2)
	empty := seedCategory(t, db, "Musiqa", 3)

	s1 := seedQuestion(t, db, science.ID, "s1")
	s2 := seedQuestion(t, db, science.ID, "s2")
	seedQuestion(t, db, science.ID, "s3")
	f1 := seedQuestion(t, db, football.ID, "f1")
	f2 := seedQuestion(t, db, football.ID, "f2")

	progress := NewProgressRepository(db)
	for _, answer := range []struct {
		id      string
		correct bool
	}{
		{s1.ID, true},
		{s2.ID, true},
		{f1.ID, false},
		{f2.ID, true},
	} {
		_, err := progress.RecordAnswer(ctx, user.ID, answer.id, answer.correct)
		require.NoError(t, err)
	}

	repo := NewCategoryRepository(db)
	totals, err := repo.QuestionCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{science.ID: 3, football.ID: 2}, totals)

	completed, err := repo.CompletedCounts(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{science.ID: 2, football.ID: 1}, completed)
	assert.Zero(t, completed[empty.ID])

	completed, err = repo.CompletedCounts(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestCategoryRepository_LegacyNameColumn(t *testing.T) {
	db := newTestDB(t, nil)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	now := time.Now()
	insert := "INSERT INTO categories (id, name, display_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	require.NoError(t, db.Exec(insert, "plain", "Science", 2, now, now).Error)
	require.NoError(t, db.Exec(insert, "quoted", `"Tarix"`, 1, now, now).Error)

	plain, err := repo.FindByID(ctx, "plain")
	require.NoError(t, err)
	require.True(t, plain.Name.IsLegacy())
	assert.Equal(t, model.LocalizedText{UZ: "Fan", RU: "Наука", EN: "Science"}, plain.Name.Text())

	quoted, err := repo.FindByID(ctx, "quoted")
	require.NoError(t, err)
	legacy, ok := quoted.Name.LegacyText()
	require.True(t, ok)
	assert.Equal(t, "Tarix", legacy)

	migrated := model.LocalizedText{UZ: "Tarix", RU: "История", EN: "History"}
	require.NoError(t, repo.UpdateName(ctx, "quoted", migrated))
	quoted, err = repo.FindByID(ctx, "quoted")
	require.NoError(t, err)
	assert.False(t, quoted.Name.NeedsMigration())
	assert.Equal(t, migrated, quoted.Name.Text())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "quoted", list[0].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrCategoryNotFound)
}
