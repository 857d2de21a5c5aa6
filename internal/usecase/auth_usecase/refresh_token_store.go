package auth

import (
	"context"
	"fmt"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/repository"
)

// リフレッシュトークンの発行・検証・失効。平文はここから外に返すだけで保存しない。
type RefreshTokenStore struct {
	tokens repository.RefreshTokenRepository
	gen    TokenGenerator
	idGen  IDGenerator
	clock  Clock
}

func NewRefreshTokenStore(
	tokens repository.RefreshTokenRepository,
	gen TokenGenerator,
	idGen IDGenerator,
	clock Clock,
) *RefreshTokenStore {
	return &RefreshTokenStore{
		tokens: tokens,
		gen:    gen,
		idGen:  idGen,
		clock:  clock,
	}
}

// Tx内のrepoに差し替えたコピー
func (s *RefreshTokenStore) WithRepo(tokens repository.RefreshTokenRepository) *RefreshTokenStore {
	cp := *s
	cp.tokens = tokens
	return &cp
}

// Create は新しいトークンを保存して平文と期限を返す
func (s *RefreshTokenStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, time.Time, error) {
	plain, err := s.gen.Generate()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate refresh token: %w", err)
	}

	now := s.clock.Now()
	rt := &model.RefreshToken{
		ID:        s.idGen.NewID(),
		UserID:    userID,
		TokenHash: s.gen.Hash(plain),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.tokens.Create(ctx, rt); err != nil {
		return "", time.Time{}, fmt.Errorf("save refresh token: %w", err)
	}
	return plain, rt.ExpiresAt, nil
}

// Validate は期限内なら記録を返す。不明・期限切れはどちらもnil
func (s *RefreshTokenStore) Validate(ctx context.Context, plain string) (*model.RefreshToken, error) {
	if plain == "" {
		return nil, nil
	}
	rt, err := s.tokens.FindActiveByTokenHash(ctx, s.gen.Hash(plain), s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return rt, nil
}

// Invalidate は1件消す。無くてもエラーにしない
func (s *RefreshTokenStore) Invalidate(ctx context.Context, plain string) error {
	if plain == "" {
		return nil
	}
	if err := s.tokens.DeleteByTokenHash(ctx, s.gen.Hash(plain)); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) InvalidateAllForUser(ctx context.Context, userID string) error {
	if err := s.tokens.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete user refresh tokens: %w", err)
	}
	return nil
}

// Claim は期限内のトークンを条件付きで消し、消せた呼び出しだけtrueになる
func (s *RefreshTokenStore) Claim(ctx context.Context, plain string) (bool, error) {
	ok, err := s.tokens.DeleteActiveByTokenHash(ctx, s.gen.Hash(plain), s.clock.Now())
	if err != nil {
		return false, fmt.Errorf("claim refresh token: %w", err)
	}
	return ok, nil
}
