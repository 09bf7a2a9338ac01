package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的 SQLite 文件库，表结构与线上迁移一致
func newTestDB(t *testing.T, log gormlogger.Interface) *gorm.DB {
	t.Helper()
	if log == nil {
		log = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "quiz.db")), &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, correct int) *model.User {
	t.Helper()
	user := &model.User{
		Email:              email,
		Password:           "hash",
		Nickname:           "learner",
		Language:           model.LangUZ,
		Mode:               model.ModeBasic,
		StatusTier:         model.DeriveStatusTier(correct),
		CorrectAnswerCount: correct,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string, order int) *model.Category {
	t.Helper()
	category := &model.Category{Name: model.LocalizedName(model.SameText(name)), DisplayOrder: order}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), category))
	return category
}

func seedQuestion(t *testing.T, db *gorm.DB, categoryID, text string) *model.Question {
	t.Helper()
	question := &model.Question{
		CategoryID: categoryID,
		Text:       model.SameText(text),
		Options: []model.Option{
			{Text: model.SameText("a"), IsCorrect: true},
			{Text: model.SameText("b")},
			{Text: model.SameText("c")},
			{Text: model.SameText("d")},
		},
	}
	require.NoError(t, NewQuestionRepository(db).Create(context.Background(), question))
	return question
}

// countingLogger 统计 gorm 上报的 record not found 次数
type countingLogger struct {
	gormlogger.Interface

	mu       sync.Mutex
	notFound int
}

func newCountingLogger() *countingLogger {
	return &countingLogger{Interface: gormlogger.Default.LogMode(gormlogger.Silent)}
}

func (l *countingLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *countingLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		l.mu.Lock()
		l.notFound++
		l.mu.Unlock()
	}
}

func (l *countingLogger) NotFound() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.notFound
}
