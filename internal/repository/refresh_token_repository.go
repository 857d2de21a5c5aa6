package repository

import (
	"context"
	"errors"
	"time"

	"taskapp/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	// 期限内のものだけ返す。無ければnil,nil
	FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error)
	// 期限内のものを1件だけ消す。消せたらtrue（ローテーションの原子的な取得）
	DeleteActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (bool, error)
	// hash一致を消す（無くてもエラーにしない）
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteAllByUserID(ctx context.Context, userID string) error
	// 期限切れ掃除
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
