package service

import (
	"context"
	"testing"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, RegisterInput{
		Email:    " Learner@Example.com ",
		Password: "password1",
		Nickname: "learner",
		Language: "rus",
	})
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", user.Email)
	assert.Equal(t, model.LangRU, user.Language)
	assert.Equal(t, model.ModeBasic, user.Mode)
	assert.Equal(t, model.TierNovice, user.StatusTier)
	assert.NotEqual(t, "password1", user.Password)

	claims, err := util.ParseJWT(token, f.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = f.auth.Register(ctx, RegisterInput{Email: "LEARNER@example.com", Password: "x"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	logged, token, err := f.auth.Login(ctx, "learner@EXAMPLE.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)

	_, _, err = f.auth.Login(ctx, "learner@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuthService_RegisterRejectsUnknownLanguage(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.auth.Register(context.Background(), RegisterInput{
		Email: "a@example.com", Password: "p", Language: "de",
	})
	assert.ErrorIs(t, err, util.ErrInvalidLanguage)

	user, _, err := f.auth.Register(context.Background(), RegisterInput{Email: "b@example.com", Password: "p"})
	require.NoError(t, err)
	assert.Empty(t, user.Language)
}

func TestAuthService_AdminLogin(t *testing.T) {
	f := newFixture(t)

	token, err := f.auth.AdminLogin("admin", "s3cret")
	require.NoError(t, err)
	claims, err := util.ParseJWT(token, f.auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	_, err = f.auth.AdminLogin("admin", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidAdmin)
	_, err = f.auth.AdminLogin("root", "s3cret")
	assert.ErrorIs(t, err, util.ErrInvalidAdmin)
}
