package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/model"
	"gorm.io/gorm"
)

// userRepo is the gorm-backed UserRepository.
type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates the postgres user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// Create inserts the account. The unique indexes on email/username are the
// real enforcement; a concurrent duplicate surfaces here as a conflict.
func (r *userRepo) Create(ctx context.Context, user *model.UserModel) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("Account already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.UserModel, error) {
	var user model.UserModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}
