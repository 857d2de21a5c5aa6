package auth

import (
	"context"
	"errors"
	"fmt"

	"taskapp/internal/domain/model"
	"taskapp/internal/repository"
)

// パスワード再設定（リンク発行と再設定）
type PasswordResetUsecase struct {
	users   repository.UserRepository
	tx      repository.TransactionManager
	resets  *ResetTokenStore
	refresh *RefreshTokenStore
	hasher  PasswordHasher
	mailer  Mailer
	clock   Clock
}

func NewPasswordResetUsecase(
	users repository.UserRepository,
	tx repository.TransactionManager,
	resets *ResetTokenStore,
	refresh *RefreshTokenStore,
	hasher PasswordHasher,
	mailer Mailer,
	clock Clock,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		users:   users,
		tx:      tx,
		resets:  resets,
		refresh: refresh,
		hasher:  hasher,
		mailer:  mailer,
		clock:   clock,
	}
}

// RequestReset はemailが無ければ何もせずnil。
// メール送信の失敗はそのまま返す（握りつぶすのはhandler側）
func (u *PasswordResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil
	}

	token, err := u.resets.Issue(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := u.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword はトークンを使用済みにしてパスワードを変え、全セッションを失効させる
func (u *PasswordResetUsecase) ResetPassword(ctx context.Context, plain string, newPassword string) error {
	t, err := u.resets.Validate(ctx, plain)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrInvalidToken
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := u.clock.Now()
	return u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		consumed, err := u.resets.WithRepo(r.PasswordResetTokens()).Consume(ctx, t.ID)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrInvalidToken
		}

		if err := r.Users().UpdatePasswordHash(ctx, t.UserID, hashed, now); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("update password: %w", err)
		}

		// 全端末ログアウト
		if err := u.refresh.WithRepo(r.RefreshTokens()).InvalidateAllForUser(ctx, t.UserID); err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  t.UserID,
			Action:       model.AuditActionPasswordReset,
			ResourceType: model.AuditResourceUser,
			ResourceID:   t.UserID,
			CreatedAt:    now,
		})
	})
}
