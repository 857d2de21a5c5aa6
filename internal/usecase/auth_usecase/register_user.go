package auth

import (
	"context"
	"errors"
	"fmt"

	"taskapp/internal/domain/model"
	"taskapp/internal/repository"
)

// 会員登録実行。登録後はremember meなしのセッションを返す
func (u *AuthUsecase) Register(ctx context.Context, email string, password string) (SessionResult, error) {
	email = repository.NormalizeEmail(email)

	// email重複チェック
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return SessionResult{}, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return SessionResult{}, ErrConflict
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return SessionResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			// 同時登録でunique違反になった
			if errors.Is(err, repository.ErrEmailAlreadyExists) {
				return ErrConflict
			}
			return fmt.Errorf("create user: %w", err)
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  user.ID,
			Action:       model.AuditActionRegister,
			ResourceType: model.AuditResourceUser,
			ResourceID:   user.ID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return SessionResult{}, err
	}

	return u.createSession(ctx, u.refresh, *user, false)
}
