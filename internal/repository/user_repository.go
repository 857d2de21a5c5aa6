package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskapp/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// email重複（unique違反）
var ErrEmailAlreadyExists = errors.New("email already exists")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（emailは正規化して保存）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。無ければnil,nil
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。無ければnil,nil
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//パスワードハッシュだけ差し替える
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error
	//ユーザー削除（refresh/reset/taskも一緒に消す）
	Delete(ctx context.Context, userID string) error
}

// emailは小文字+前後空白除去で比較する
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
