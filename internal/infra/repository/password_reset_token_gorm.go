package repository

import (
	"context"
	"errors"
	"time"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"

	"gorm.io/gorm"
)

type passwordResetTokenGormRepository struct {
	db *gorm.DB
}

func NewPasswordResetTokenRepository(db *gorm.DB) repo.PasswordResetTokenRepository {
	return &passwordResetTokenGormRepository{db: db}
}

func (r *passwordResetTokenGormRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// 未使用かつ期限内の1件
func (r *passwordResetTokenGormRepository) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken

	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", tokenHash, now).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// 新しいトークンを発行する前に、古い未使用トークンを潰す
func (r *passwordResetTokenGormRepository) MarkAllUnusedUsedByUserID(ctx context.Context, userID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PasswordResetToken{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", now)

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// used_at IS NULL の時だけ更新。二重使用は false
func (r *passwordResetTokenGormRepository) MarkUsed(ctx context.Context, tokenID string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PasswordResetToken{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", now)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *passwordResetTokenGormRepository) DeleteExpiredOrUsed(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ? OR used_at IS NOT NULL", now).
		Delete(&model.PasswordResetToken{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *passwordResetTokenGormRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.PasswordResetToken{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
