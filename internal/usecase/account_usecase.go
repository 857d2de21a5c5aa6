package usecase

import (
	"context"
	"errors"
	"fmt"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"
	auth "taskapp/internal/usecase/auth_usecase"
)

var (
	// 404 アカウントが無い
	ErrAccountNotFound = errors.New("user not found")
	// 401 削除時のパスワード違い
	ErrInvalidPassword = errors.New("invalid password")
)

// ログイン中ユーザー自身のアカウント操作
type AccountUsecase struct {
	users    repo.UserRepository
	tx       repo.TransactionManager
	audit    repo.AuditLogRepository
	verifier auth.PasswordVerifier
	clock    auth.Clock
}

func NewAccountUsecase(
	users repo.UserRepository,
	tx repo.TransactionManager,
	audit repo.AuditLogRepository,
	verifier auth.PasswordVerifier,
	clock auth.Clock,
) *AccountUsecase {
	return &AccountUsecase{
		users:    users,
		tx:       tx,
		audit:    audit,
		verifier: verifier,
		clock:    clock,
	}
}

func (u *AccountUsecase) Get(ctx context.Context, userID string) (model.PublicUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return model.PublicUser{}, ErrAccountNotFound
	}
	return user.Public(), nil
}

// Delete はパスワードを確認してから、タスク・トークンごとユーザーを消す
func (u *AccountUsecase) Delete(ctx context.Context, userID string, password string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrAccountNotFound
	}

	if !u.verifier.Verify(password, user.PasswordHash) {
		return ErrInvalidPassword
	}

	now := u.clock.Now()
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Delete(ctx, userID); err != nil {
			if errors.Is(err, repo.ErrUserNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("delete user: %w", err)
		}
		// 監査ログはユーザー削除後も残す
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  userID,
			Action:       model.AuditActionDeleteAccount,
			ResourceType: model.AuditResourceUser,
			ResourceID:   userID,
			CreatedAt:    now,
		})
	})
}

// 自分の操作履歴（新しい順）
func (u *AccountUsecase) ListActivity(ctx context.Context, userID string, limit int) ([]model.AuditLog, error) {
	logs, err := u.audit.List(ctx, repo.AuditLogFilter{
		ActorUserID: &userID,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return logs, nil
}
