package auth

import (
	"context"
	"fmt"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/repository"
)

// リセットリンクの有効期限
const ResetTokenTTL = time.Hour

// パスワードリセットトークンの発行・検証・使用済み化
type ResetTokenStore struct {
	tokens repository.PasswordResetTokenRepository
	tx     repository.TransactionManager
	gen    TokenGenerator
	idGen  IDGenerator
	clock  Clock
}

func NewResetTokenStore(
	tokens repository.PasswordResetTokenRepository,
	tx repository.TransactionManager,
	gen TokenGenerator,
	idGen IDGenerator,
	clock Clock,
) *ResetTokenStore {
	return &ResetTokenStore{
		tokens: tokens,
		tx:     tx,
		gen:    gen,
		idGen:  idGen,
		clock:  clock,
	}
}

// Tx内のrepoに差し替えたコピー
func (s *ResetTokenStore) WithRepo(tokens repository.PasswordResetTokenRepository) *ResetTokenStore {
	cp := *s
	cp.tokens = tokens
	return &cp
}

// Issue は古い未使用トークンを使用済みにしてから新しいトークンを作る（1Tx）
func (s *ResetTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	plain, err := s.gen.Generate()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	now := s.clock.Now()
	token := &model.PasswordResetToken{
		ID:        s.idGen.NewID(),
		UserID:    userID,
		TokenHash: s.gen.Hash(plain),
		ExpiresAt: now.Add(ResetTokenTTL),
		CreatedAt: now,
	}

	err = s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if _, err := r.PasswordResetTokens().MarkAllUnusedUsedByUserID(ctx, userID, now); err != nil {
			return err
		}
		return r.PasswordResetTokens().Create(ctx, token)
	})
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}

	return plain, nil
}

// Validate は未使用かつ期限内なら返す。それ以外はnil
func (s *ResetTokenStore) Validate(ctx context.Context, plain string) (*model.PasswordResetToken, error) {
	if plain == "" {
		return nil, nil
	}
	t, err := s.tokens.FindActiveByTokenHash(ctx, s.gen.Hash(plain), s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return t, nil
}

// Consume は used_at をセットする。既に使用済みならfalse
func (s *ResetTokenStore) Consume(ctx context.Context, tokenID string) (bool, error) {
	ok, err := s.tokens.MarkUsed(ctx, tokenID, s.clock.Now())
	if err != nil {
		return false, fmt.Errorf("consume reset token: %w", err)
	}
	return ok, nil
}
