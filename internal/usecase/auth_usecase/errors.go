package auth

import "errors"

var (
	//409 email重複
	ErrConflict = errors.New("email already registered")
	//401 emailが無い・パスワード違いを区別しない
	ErrInvalidCredentials = errors.New("invalid email or password")
	//401 不明・期限切れ・使用済みのrefresh token
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	//401 tokenは有効だが持ち主が消えている
	ErrUserNotFound = errors.New("user not found")
	//400 不明・期限切れ・使用済みのreset token
	ErrInvalidToken = errors.New("invalid or expired reset token")
	//400 入力不正（validatorが返す）
	ErrValidation = errors.New("validation error")
)
