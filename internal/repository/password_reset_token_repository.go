package repository

import (
	"context"
	"time"

	"taskapp/internal/domain/model"
)

// パスワードリセットトークンの保存・取得・使用済み化
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	// 未使用かつ期限内のものだけ返す。無ければnil,nil
	FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.PasswordResetToken, error)
	// ユーザーの未使用トークンを全部used_at=nowにする
	MarkAllUnusedUsedByUserID(ctx context.Context, userID string, now time.Time) (int64, error)
	// 未使用なら used_at=now。今回使用済みにできたらtrue
	MarkUsed(ctx context.Context, tokenID string, now time.Time) (bool, error)
	// 期限切れ/使用済みの掃除
	DeleteExpiredOrUsed(ctx context.Context, now time.Time) (int64, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}
