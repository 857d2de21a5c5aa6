package auth

import (
	"context"
	"fmt"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/repository"
)

// セッション期間（通常 / remember me）
type SessionTTL struct {
	Standard time.Duration
	Remember time.Duration
}

// register/login/refreshの結果。handlerがbodyとCookieに詰める
type SessionResult struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	RememberMe       bool
	User             model.PublicUser
}

// 登録・ログイン・リフレッシュ・ログアウト
type AuthUsecase struct {
	users    repository.UserRepository
	tx       repository.TransactionManager
	refresh  *RefreshTokenStore
	hasher   PasswordHasher
	verifier PasswordVerifier
	signer   AccessTokenSigner
	idGen    IDGenerator
	clock    Clock
	ttl      SessionTTL
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	tx repository.TransactionManager,
	refresh *RefreshTokenStore,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	signer AccessTokenSigner,
	idGen IDGenerator,
	clock Clock,
	ttl SessionTTL,
) *AuthUsecase {
	if ttl.Standard <= 0 {
		ttl.Standard = DefaultRefreshTTL
	}
	if ttl.Remember <= 0 {
		ttl.Remember = 30 * 24 * time.Hour
	}
	return &AuthUsecase{
		users:    users,
		tx:       tx,
		refresh:  refresh,
		hasher:   hasher,
		verifier: verifier,
		signer:   signer,
		idGen:    idGen,
		clock:    clock,
		ttl:      ttl,
	}
}

// Refresh はトークンを1回だけ使えるようにローテーションする
func (u *AuthUsecase) Refresh(ctx context.Context, plain string) (SessionResult, error) {
	rt, err := u.refresh.Validate(ctx, plain)
	if err != nil {
		return SessionResult{}, err
	}
	if rt == nil {
		return SessionResult{}, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil {
		return SessionResult{}, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return SessionResult{}, ErrUserNotFound
	}

	// 残り期間が通常TTLより長ければremember meだったとみなす
	rememberMe := rt.ExpiresAt.Sub(u.clock.Now()) > u.ttl.Standard

	var out SessionResult
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		store := u.refresh.WithRepo(r.RefreshTokens())

		claimed, err := store.Claim(ctx, plain)
		if err != nil {
			return err
		}
		// 同時に別のリクエストが先に使った
		if !claimed {
			return ErrInvalidRefreshToken
		}

		out, err = u.createSession(ctx, store, *user, rememberMe)
		return err
	})
	if err != nil {
		return SessionResult{}, err
	}
	return out, nil
}

// Logout は渡されたトークンだけ失効させる。何度呼んでもよい
func (u *AuthUsecase) Logout(ctx context.Context, plain string) error {
	return u.refresh.Invalidate(ctx, plain)
}

// アクセストークンとリフレッシュトークンを発行する
func (u *AuthUsecase) createSession(ctx context.Context, store *RefreshTokenStore, user model.User, rememberMe bool) (SessionResult, error) {
	now := u.clock.Now()

	access, accessExp, err := u.signer.Sign(model.AccessClaims{UserID: user.ID, Email: user.Email}, now)
	if err != nil {
		return SessionResult{}, err
	}

	ttl := u.ttl.Standard
	if rememberMe {
		ttl = u.ttl.Remember
	}

	refresh, refreshExp, err := store.Create(ctx, user.ID, ttl)
	if err != nil {
		return SessionResult{}, err
	}

	return SessionResult{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		RememberMe:       rememberMe,
		User:             user.Public(),
	}, nil
}
