// Package servicetest 提供服务层存储接口的内存实现，供各层测试使用。
package servicetest

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"
)

type attemptKey struct {
	userID     string
	questionID string
}

// Store 所有内存表共用一把锁
type Store struct {
	mu         sync.Mutex
	users      map[string]*model.User
	categories map[string]*model.Category
	questions  map[string]*model.Question
	order      []string
	attempts   map[attemptKey]bool
	clock      time.Time

	// QuestionSaveErr 非空时 Create / Update 题目返回该错误
	QuestionSaveErr error
}

func NewStore() *Store {
	return &Store{
		users:      map[string]*model.User{},
		categories: map[string]*model.Category{},
		questions:  map[string]*model.Question{},
		attempts:   map[attemptKey]bool{},
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) Users() *Users { return &Users{s} }
func (s *Store) Categories() *Categories { return &Categories{s} }
func (s *Store) Questions() *Questions { return &Questions{s} }
func (s *Store) Progress() *Progress { return &Progress{s} }

// tick 保证创建时间严格递增
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) stamp(b *model.UUIDBase) {
	if b.ID == "" {
		b.ID = model.GenerateUUID()
	}
	now := s.tick()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// MustAddCategory 直接写入一个分类并返回其 ID
func (s *Store) MustAddCategory(name model.CategoryName, order int) string {
	c := &model.Category{Name: name, DisplayOrder: order}
	if err := s.Categories().Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c.ID
}

// MustAddUser 直接写入一个用户并返回其 ID
func (s *Store) MustAddUser(email string, lang model.Language) string {
	u := &model.User{Email: email, Nickname: email, Language: lang, Mode: model.ModeBasic, StatusTier: model.TierNovice}
	if err := s.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u.ID
}

// SetCorrectCount 模拟历史数据中计数与等级不一致
func (s *Store) SetCorrectCount(userID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].CorrectAnswerCount = n
}

func (s *Store) Attempt(userID, questionID string) (correct, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	correct, ok = s.attempts[attemptKey{userID, questionID}]
	return
}

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}
	r.s.stamp(&user.UUIDBase)
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *Users) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *Users) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *Users) UpdateLanguage(_ context.Context, id string, lang model.Language) error {
	return r.update(id, func(u *model.User) { u.Language = lang })
}

func (r *Users) UpdateMode(_ context.Context, id string, mode model.UserMode) error {
	return r.update(id, func(u *model.User) { u.Mode = mode })
}

func (r *Users) UpdateTier(_ context.Context, id string, tier model.StatusTier) error {
	return r.update(id, func(u *model.User) { u.StatusTier = tier })
}

func (r *Users) update(id string, fn func(u *model.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return util.ErrUserNotFound
	}
	fn(u)
	return nil
}

type Categories struct{ s *Store }

func (r *Categories) List(_ context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Categories) FindByID(_ context.Context, id string) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, util.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Categories) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *Categories) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.categories)), nil
}

func (r *Categories) Create(_ context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&category.UUIDBase)
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *Categories) UpdateName(_ context.Context, id string, name model.LocalizedText) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return util.ErrCategoryNotFound
	}
	c.Name = model.LocalizedName(name)
	return nil
}

func (r *Categories) QuestionCounts(_ context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for _, q := range r.s.questions {
		counts[q.CategoryID]++
	}
	return counts, nil
}

func (r *Categories) CompletedCounts(_ context.Context, userID string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for key, correct := range r.s.attempts {
		if key.userID != userID || !correct {
			continue
		}
		if q, ok := r.s.questions[key.questionID]; ok {
			counts[q.CategoryID]++
		}
	}
	return counts, nil
}

type Questions struct{ s *Store }

func (r *Questions) Create(_ context.Context, question *model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.QuestionSaveErr != nil {
		return r.s.QuestionSaveErr
	}
	r.s.stamp(&question.UUIDBase)
	r.s.questions[question.ID] = cloneQuestion(question)
	r.s.order = append(r.s.order, question.ID)
	return nil
}

func (r *Questions) Update(_ context.Context, question *model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.QuestionSaveErr != nil {
		return r.s.QuestionSaveErr
	}
	if _, ok := r.s.questions[question.ID]; !ok {
		return util.ErrQuestionNotFound
	}
	question.UpdatedAt = r.s.tick()
	r.s.questions[question.ID] = cloneQuestion(question)
	return nil
}

func (r *Questions) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[id]; !ok {
		return util.ErrQuestionNotFound
	}
	delete(r.s.questions, id)
	return nil
}

func (r *Questions) FindByID(_ context.Context, id string) (*model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	return cloneQuestion(q), nil
}

func (r *Questions) List(_ context.Context, categoryID string) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Question
	for i := len(r.s.order) - 1; i >= 0; i-- {
		q, ok := r.s.questions[r.s.order[i]]
		if !ok || (categoryID != "" && q.CategoryID != categoryID) {
			continue
		}
		out = append(out, *cloneQuestion(q))
	}
	return out, nil
}

func (r *Questions) ListUnsolved(_ context.Context, categoryID, userID string) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Question
	for _, id := range r.s.order {
		q, ok := r.s.questions[id]
		if !ok || q.CategoryID != categoryID {
			continue
		}
		if r.s.attempts[attemptKey{userID, id}] {
			continue
		}
		out = append(out, *cloneQuestion(q))
	}
	return out, nil
}

func cloneQuestion(q *model.Question) *model.Question {
	cp := *q
	cp.Options = append([]model.Option(nil), q.Options...)
	return &cp
}

type Progress struct{ s *Store }

func (r *Progress) SolvedCount(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(r.s.solvedCount(userID)), nil
}

func (s *Store) solvedCount(userID string) int {
	n := 0
	for key := range s.attempts {
		if key.userID == userID {
			n++
		}
	}
	return n
}

func (r *Progress) RecordAnswer(_ context.Context, userID, questionID string, correct bool) (*model.AnswerOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, util.ErrUserNotFound
	}

	key := attemptKey{userID, questionID}
	var current *model.QuestionAttempt
	if c, ok := r.s.attempts[key]; ok {
		current = &model.QuestionAttempt{Correct: c}
	}
	state := current.State()
	next := model.NextAttemptState(state, correct)

	if state != next {
		r.s.attempts[key] = next == model.AttemptedCorrect
		if next == model.AttemptedCorrect {
			user.CorrectAnswerCount++
		}
	}
	user.RefreshTier()

	return &model.AnswerOutcome{
		IsCorrect:          correct || state == model.AttemptedCorrect,
		AlreadySolved:      state == model.AttemptedCorrect,
		CorrectAnswerCount: user.CorrectAnswerCount,
		StatusTier:         user.StatusTier,
		SolvedCount:        r.s.solvedCount(userID),
	}, nil
}

// Translator 假翻译：返回 "[target] text"；Fail 为 true 时模拟全部服务失败
type Translator struct {
	Fail  atomic.Bool
	calls atomic.Int32
}

func (t *Translator) Translate(_ context.Context, text, source, target string) string {
	t.calls.Add(1)
	if t.Fail.Load() || source == target || strings.TrimSpace(text) == "" {
		return text
	}
	return fmt.Sprintf("[%s] %s", target, text)
}

func (t *Translator) Calls() int { return int(t.calls.Load()) }

// Images 记录上传和删除过的图片地址
type Images struct {
	mu        sync.Mutex
	seq       int
	Uploaded  []string
	Deleted   []string
	UploadErr error
}

func (i *Images) UploadImage(_ context.Context, file *multipart.FileHeader) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.UploadErr != nil {
		return "", i.UploadErr
	}
	i.seq++
	url := fmt.Sprintf("/uploads/questions/question-%d-%s", i.seq, file.Filename)
	i.Uploaded = append(i.Uploaded, url)
	return url, nil
}

func (i *Images) DeleteByURL(_ context.Context, url string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Deleted = append(i.Deleted, url)
	return nil
}
