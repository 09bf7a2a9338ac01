package service

import (
	"context"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"
	"smart_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// Profile 用户资料加上答题统计
// swagger:model Profile
type Profile struct {
	model.User
	SolvedCount int64 `json:"solvedQuestionsCount"`
}

// UserService 处理用户相关的业务逻辑
type UserService struct {
	Users    UserStore
	Progress ProgressStore
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(users UserStore, progress ProgressStore) *UserService {
	return &UserService{
		Users:    users,
		Progress: progress,
	}
}

// Profile 读取时顺便修正与答题数不一致的等级
func (s *UserService) Profile(ctx context.Context, id string) (*Profile, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.RefreshTier() {
		if err := s.Users.UpdateTier(ctx, user.ID, user.StatusTier); err != nil {
			logger.Log.Warn("Failed to persist refreshed status tier",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	solved, err := s.Progress.SolvedCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: *user, SolvedCount: solved}, nil
}

// Exists 供鉴权中间件确认 token 中的用户仍然存在
func (s *UserService) Exists(ctx context.Context, id string) (bool, error) {
	return s.Users.Exists(ctx, id)
}

func (s *UserService) SetLanguage(ctx context.Context, id, code string) (model.Language, error) {
	lang, ok := model.ParseLanguage(code)
	if !ok {
		return "", util.ErrInvalidLanguage
	}
	if err := s.Users.UpdateLanguage(ctx, id, lang); err != nil {
		return "", err
	}
	return lang, nil
}

// SetMode 管理员切换 basic / premium
func (s *UserService) SetMode(ctx context.Context, id, mode string) (*Profile, error) {
	m, ok := model.ParseUserMode(mode)
	if !ok {
		return nil, util.ErrInvalidMode
	}
	if err := s.Users.UpdateMode(ctx, id, m); err != nil {
		return nil, err
	}
	return s.Profile(ctx, id)
}
