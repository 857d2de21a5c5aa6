package validator

import (
	"net/mail"
	"strings"
	"unicode"

	"taskapp/internal/repository"
	auth "taskapp/internal/usecase/auth_usecase"
)

// 入力エラーのまとめ。errors.Is(err, auth.ErrValidation) でtrueになる
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == auth.ErrValidation
}

// 1件もなければnil
func errorsOf(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

// 会員登録。正規化したemailを返す
func ValidateRegister(email string, password string) (string, error) {
	normalized, msgs := checkEmail(email)
	msgs = append(msgs, checkPassword(password)...)
	return normalized, errorsOf(msgs)
}

// ログイン。パスワードは空でなければよい
func ValidateLogin(email string, password string) (string, error) {
	normalized, msgs := checkEmail(email)
	if password == "" {
		msgs = append(msgs, "Password is required")
	}
	return normalized, errorsOf(msgs)
}

func ValidateForgotPassword(email string) (string, error) {
	normalized, msgs := checkEmail(email)
	return normalized, errorsOf(msgs)
}

func ValidateResetPassword(token string, password string) error {
	var msgs []string
	if token == "" {
		msgs = append(msgs, "Token is required")
	}
	msgs = append(msgs, checkPassword(password)...)
	return errorsOf(msgs)
}

func ValidateDeleteAccount(password string) error {
	if password == "" {
		return errorsOf([]string{"Password is required"})
	}
	return nil
}

// emailの形式チェック（小文字・前後空白除去したものを返す）
func checkEmail(email string) (string, []string) {
	normalized := repository.NormalizeEmail(email)
	if normalized == "" {
		return "", []string{"Invalid email address"}
	}

	// 表示名つき（"A <a@b.c>"）は受けない
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", []string{"Invalid email address"}
	}
	return normalized, nil
}

// 8文字以上・大文字・小文字・数字
func checkPassword(password string) []string {
	var msgs []string
	if len(password) < 8 {
		msgs = append(msgs, "Password must be at least 8 characters")
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		msgs = append(msgs, "Password must contain at least one uppercase letter")
	}
	if !lower {
		msgs = append(msgs, "Password must contain at least one lowercase letter")
	}
	if !digit {
		msgs = append(msgs, "Password must contain at least one number")
	}
	return msgs
}
