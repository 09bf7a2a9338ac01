package service

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/service/servicetest"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store      *servicetest.Store
	translator *servicetest.Translator
	images     *servicetest.Images
	questions  *QuestionService
	progress   *ProgressService
	users      *UserService
	categories *CategoryService
	auth       *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := servicetest.NewStore()
	tr := &servicetest.Translator{}
	images := &servicetest.Images{}
	qt := NewQuestionTranslator(tr, 4)

	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "service-test-secret", ExpireTime: time.Hour},
		Admin: config.AdminConfig{Login: "admin", Password: "s3cret"},
	}

	return &fixture{
		store:      store,
		translator: tr,
		images:     images,
		questions:  NewQuestionService(store.Questions(), store.Categories(), store.Users(), qt, images),
		progress:   NewProgressService(store.Questions(), store.Progress()),
		users:      NewUserService(store.Users(), store.Progress()),
		categories: NewCategoryService(store.Categories(), store.Users(), qt),
		auth:       NewAuthService(store.Users(), cfg),
	}
}

func baseOptions(correct int, texts ...string) []model.BaseOption {
	opts := make([]model.BaseOption, len(texts))
	for i, text := range texts {
		opts[i] = model.BaseOption{Text: text, IsCorrect: i == correct}
	}
	return opts
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

// imageHeader 内容是合法的 PNG 文件头
func imageHeader(t *testing.T, name string) *multipart.FileHeader {
	return formFile(t, name, pngHeader)
}
