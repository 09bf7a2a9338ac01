package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users UserStore
	Cfg   *config.Config
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Nickname string
	Language string
}

// Register 邮箱统一小写；语言可选，传了就必须合法
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	email := normalizeEmail(in.Email)

	var lang model.Language
	if strings.TrimSpace(in.Language) != "" {
		parsed, ok := model.ParseLanguage(in.Language)
		if !ok {
			return nil, "", util.ErrInvalidLanguage
		}
		lang = parsed
	}

	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:      email,
		Password:   string(hashedPassword),
		Nickname:   strings.TrimSpace(in.Nickname),
		Language:   lang,
		Mode:       model.ModeBasic,
		StatusTier: model.DeriveStatusTier(0),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateUserJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateUserJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AdminLogin 管理员账号来自配置，不查库
func (s *AuthService) AdminLogin(login, password string) (string, error) {
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(s.Cfg.Admin.Login)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.Cfg.Admin.Password)) == 1
	if !loginOK || !passwordOK || s.Cfg.Admin.Login == "" {
		return "", util.ErrInvalidAdmin
	}
	return util.GenerateAdminJWT(s.Cfg.Admin.Login, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
