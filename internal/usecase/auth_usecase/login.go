package auth

import (
	"context"
	"fmt"
)

// ログイン。emailが無い場合もパスワード違いも同じエラーを返す
func (u *AuthUsecase) Login(ctx context.Context, email string, password string, rememberMe bool) (SessionResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return SessionResult{}, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return SessionResult{}, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(password, user.PasswordHash); !ok {
		return SessionResult{}, ErrInvalidCredentials
	}

	return u.createSession(ctx, u.refresh, *user, rememberMe)
}
