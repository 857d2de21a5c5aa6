package auth

import (
	"context"
	"time"

	"taskapp/internal/domain/model"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 不透明トークンの生成と保存用ハッシュ
type TokenGenerator interface {
	Generate() (string, error)
	Hash(plain string) string
}

// JWTを発行する約束
type AccessTokenSigner interface {
	Sign(claims model.AccessClaims, now time.Time) (token string, expiresAt time.Time, err error)
}

// リセットメールを送る約束（送信方法はinfra/mail）
type Mailer interface {
	SendPasswordReset(ctx context.Context, email string, token string) error
}
