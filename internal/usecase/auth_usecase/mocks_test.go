package auth

import (
	"context"
	"fmt"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	args := m.Called(ctx, userID, passwordHash, now)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash, now)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: AuditLogRepository
// =====================

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in auth tests")
}

// =====================
// Fake: TransactionManager（fnをそのまま呼ぶ）
// =====================

type fakeTxRepos struct {
	users   repository.UserRepository
	refresh repository.RefreshTokenRepository
	resets  repository.PasswordResetTokenRepository
	audit   repository.AuditLogRepository
}

func (r *fakeTxRepos) Users() repository.UserRepository                 { return r.users }
func (r *fakeTxRepos) RefreshTokens() repository.RefreshTokenRepository { return r.refresh }
func (r *fakeTxRepos) PasswordResetTokens() repository.PasswordResetTokenRepository {
	return r.resets
}
func (r *fakeTxRepos) AuditLogs() repository.AuditLogRepository { return r.audit }

type fakeTxManager struct {
	repos *fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// Stubs
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// 平文と同じ文字列を連番で返す
type stubTokenGen struct{ n int }

func (g *stubTokenGen) Generate() (string, error) {
	g.n++
	return fmt.Sprintf("plain-%d", g.n), nil
}

func (g *stubTokenGen) Hash(plain string) string { return "hash:" + plain }

type stubSigner struct{}

func (stubSigner) Sign(claims model.AccessClaims, now time.Time) (string, time.Time, error) {
	return "access:" + claims.UserID, now.Add(15 * time.Minute), nil
}

type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "bcrypt:" + plain, nil }

type stubVerifier struct{}

func (stubVerifier) Verify(plain string, hashed string) bool { return hashed == "bcrypt:"+plain }
