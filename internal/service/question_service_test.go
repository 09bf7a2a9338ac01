package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)

	q, err := f.questions.Create(ctx, QuestionInput{
		CategoryID: catID,
		Text:       "  Suv formulasi?  ",
		Options:    baseOptions(0, "H2O", "CO2", "O2", "NaCl"),
		Image:      imageHeader(t, "water.png"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Suv formulasi?", q.Text.UZ)
	assert.Equal(t, "[ru] Suv formulasi?", q.Text.RU)
	assert.Equal(t, 0, q.CorrectIndex())
	assert.Equal(t, f.images.Uploaded[0], q.Image)
	assert.Equal(t, 10, f.translator.Calls())

	stored, err := f.questions.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, stored.Text)
}

func TestQuestionService_CreateRejectsInvalidInputWithoutSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)

	cases := []struct {
		name string
		in   QuestionInput
		want error
	}{
		{"three options", QuestionInput{CategoryID: catID, Text: "Q", Options: baseOptions(0, "a", "b", "c")}, model.ErrOptionCount},
		{"five options", QuestionInput{CategoryID: catID, Text: "Q", Options: baseOptions(0, "a", "b", "c", "d", "e")}, model.ErrOptionCount},
		{"no correct", QuestionInput{CategoryID: catID, Text: "Q", Options: baseOptions(-1, "a", "b", "c", "d")}, model.ErrCorrectOptionCount},
		{"blank text", QuestionInput{CategoryID: catID, Text: "  ", Options: baseOptions(0, "a", "b", "c", "d")}, model.ErrEmptyQuestionText},
		{"blank option", QuestionInput{CategoryID: catID, Text: "Q", Options: baseOptions(0, "a", " ", "c", "d")}, model.ErrEmptyOptionText},
		{"missing category", QuestionInput{Text: "Q", Options: baseOptions(0, "a", "b", "c", "d")}, util.ErrValidation},
		{"unknown category", QuestionInput{CategoryID: "nope", Text: "Q", Options: baseOptions(0, "a", "b", "c", "d")}, util.ErrCategoryNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Image = imageHeader(t, "x.png")
			_, err := f.questions.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	twoCorrect := baseOptions(0, "a", "b", "c", "d")
	twoCorrect[2].IsCorrect = true
	_, err := f.questions.Create(ctx, QuestionInput{CategoryID: catID, Text: "Q", Options: twoCorrect})
	assert.ErrorIs(t, err, model.ErrCorrectOptionCount)

	assert.Zero(t, f.translator.Calls())
	assert.Empty(t, f.images.Uploaded)
	list, err := f.questions.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQuestionService_CreateDeletesImageWhenSaveFails(t *testing.T) {
	f := newFixture(t)
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)
	f.store.QuestionSaveErr = errors.New("disk full")

	_, err := f.questions.Create(context.Background(), QuestionInput{
		CategoryID: catID,
		Text:       "Q",
		Options:    baseOptions(0, "a", "b", "c", "d"),
		Image:      imageHeader(t, "x.png"),
	})
	require.Error(t, err)
	require.Len(t, f.images.Uploaded, 1)
	assert.Equal(t, f.images.Uploaded, f.images.Deleted)
}

func TestQuestionService_CreateStopsWhenUploadFails(t *testing.T) {
	f := newFixture(t)
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)
	f.images.UploadErr = errors.New("bucket unavailable")

	_, err := f.questions.Create(context.Background(), QuestionInput{
		CategoryID: catID,
		Text:       "Q",
		Options:    baseOptions(0, "a", "b", "c", "d"),
		Image:      imageHeader(t, "x.png"),
	})
	assert.EqualError(t, err, "bucket unavailable")

	list, _ := f.questions.List(context.Background(), catID)
	assert.Empty(t, list)
}

func TestQuestionService_RejectsBadImageBeforeTranslating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)

	existing, err := f.questions.Create(ctx, QuestionInput{
		CategoryID: catID, Text: "Old", Options: baseOptions(0, "a", "b", "c", "d"),
	})
	require.NoError(t, err)
	callsAfterCreate := f.translator.Calls()

	oversized := imageHeader(t, "big.png")
	oversized.Size = util.MaxImageSize + 1

	bad := map[string]*multipart.FileHeader{
		"extension": formFile(t, "notes.txt", []byte("hello")),
		"content":   formFile(t, "fake.png", []byte("plain text pretending to be an image")),
		"size":      oversized,
	}
	for name, file := range bad {
		_, err := f.questions.Create(ctx, QuestionInput{
			CategoryID: catID, Text: "Q", Options: baseOptions(0, "a", "b", "c", "d"), Image: file,
		})
		assert.ErrorIs(t, err, util.ErrInvalidImage, name)

		_, err = f.questions.Update(ctx, existing.ID, QuestionInput{
			CategoryID: catID, Text: "Q", Options: baseOptions(0, "a", "b", "c", "d"), Image: file,
		})
		assert.ErrorIs(t, err, util.ErrInvalidImage, name)
	}

	assert.Equal(t, callsAfterCreate, f.translator.Calls())
	assert.Empty(t, f.images.Uploaded)
}

func TestQuestionService_UpdateReplacesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)

	q, err := f.questions.Create(ctx, QuestionInput{
		CategoryID: catID, Text: "Old", Options: baseOptions(0, "a", "b", "c", "d"), Image: imageHeader(t, "old.png"),
	})
	require.NoError(t, err)
	oldImage := q.Image

	updated, err := f.questions.Update(ctx, q.ID, QuestionInput{
		CategoryID: catID, Text: "New", Options: baseOptions(3, "a", "b", "c", "d"), Image: imageHeader(t, "new.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Text.UZ)
	assert.Equal(t, "[en] New", updated.Text.EN)
	assert.Equal(t, 3, updated.CorrectIndex())
	assert.NotEqual(t, oldImage, updated.Image)
	assert.Equal(t, []string{oldImage}, f.images.Deleted)
}

func TestQuestionService_UpdateKeepsImageWhenNoneUploaded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)

	q, err := f.questions.Create(ctx, QuestionInput{
		CategoryID: catID, Text: "Old", Options: baseOptions(0, "a", "b", "c", "d"), Image: imageHeader(t, "old.png"),
	})
	require.NoError(t, err)

	updated, err := f.questions.Update(ctx, q.ID, QuestionInput{
		CategoryID: catID, Text: "New", Options: baseOptions(1, "a", "b", "c", "d"),
	})
	require.NoError(t, err)
	assert.Equal(t, q.Image, updated.Image)
	assert.Empty(t, f.images.Deleted)

	_, err = f.questions.Update(ctx, "missing", QuestionInput{CategoryID: catID, Text: "X", Options: baseOptions(0, "a", "b", "c", "d")})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestQuestionService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)

	q, err := f.questions.Create(ctx, QuestionInput{
		CategoryID: catID, Text: "Q", Options: baseOptions(0, "a", "b", "c", "d"), Image: imageHeader(t, "q.png"),
	})
	require.NoError(t, err)

	require.NoError(t, f.questions.Delete(ctx, q.ID))
	assert.Equal(t, []string{q.Image}, f.images.Deleted)

	_, err = f.questions.Get(ctx, q.ID)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	assert.ErrorIs(t, f.questions.Delete(ctx, q.ID), util.ErrQuestionNotFound)
}

func TestQuestionService_ListUnsolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catID := f.store.MustAddCategory(model.LegacyName("Science"), 1)
	otherID := f.store.MustAddCategory(model.LegacyName("Music"), 2)
	userID := f.store.MustAddUser("learner@example.com", model.LangRU)

	first, err := f.questions.Create(ctx, QuestionInput{CategoryID: catID, Text: "Birinchi", Options: baseOptions(0, "a", "b", "c", "d")})
	require.NoError(t, err)
	second, err := f.questions.Create(ctx, QuestionInput{CategoryID: catID, Text: "Ikkinchi", Options: baseOptions(1, "a", "b", "c", "d")})
	require.NoError(t, err)
	_, err = f.questions.Create(ctx, QuestionInput{CategoryID: otherID, Text: "Boshqa", Options: baseOptions(2, "a", "b", "c", "d")})
	require.NoError(t, err)

	views, lang, err := f.questions.ListUnsolved(ctx, catID, userID, "")
	require.NoError(t, err)
	assert.Equal(t, model.LangRU, lang)
	require.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].ID, "oldest first")
	assert.Equal(t, "[ru] Birinchi", views[0].Question)
	assert.Nil(t, views[0].Image)

	// 答错的题仍然出现，答对后消失
	_, err = f.progress.SubmitAnswer(ctx, userID, second.ID, 0)
	require.NoError(t, err)
	views, _, err = f.questions.ListUnsolved(ctx, catID, userID, "eng")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "[en] Ikkinchi", views[1].Question)

	_, err = f.progress.SubmitAnswer(ctx, userID, second.ID, 1)
	require.NoError(t, err)
	views, _, err = f.questions.ListUnsolved(ctx, catID, userID, "xx")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Birinchi", views[0].Question, "unknown language falls back to uz")

	_, _, err = f.questions.ListUnsolved(ctx, "missing", userID, "")
	assert.ErrorIs(t, err, util.ErrCategoryNotFound)
}
