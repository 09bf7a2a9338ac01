package repository

import (
	"context"
	"errors"

	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrEmailRegistered
	}
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where(cond, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, id string, lang model.Language) error {
	return r.updateColumn(ctx, id, "language", lang)
}

func (r *UserRepository) UpdateMode(ctx context.Context, id string, mode model.UserMode) error {
	return r.updateColumn(ctx, id, "mode", mode)
}

func (r *UserRepository) UpdateTier(ctx context.Context, id string, tier model.StatusTier) error {
	return r.updateColumn(ctx, id, "status_tier", tier)
}

func (r *UserRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	result := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL 在值未变化时 RowsAffected 也为 0，需要再确认一次
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return util.ErrUserNotFound
		}
	}
	return nil
}
