package usecase

import (
	"path/filepath"
	"testing"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/infra/db"
	"taskapp/internal/infra/repository"
	"taskapp/internal/infra/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAccountUC(t *testing.T) (*AccountUsecase, *gorm.DB, *model.User) {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "account.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	hash, err := security.NewBcryptPasswordHasher(bcrypt.MinCost).Hash("Passw0rd")
	require.NoError(t, err)

	user := &model.User{ID: "u-1", Email: "me@test.com", PasswordHash: hash, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, repository.NewUserGormRepository(gdb).Create(t.Context(), user))

	uc := NewAccountUsecase(
		repository.NewUserGormRepository(gdb),
		repository.NewTxManagerGorm(gdb),
		repository.NewAuditLogGormRepository(gdb),
		security.NewBcryptPasswordVerifier(),
		fixedClock{t: testNow},
	)
	return uc, gdb, user
}

func TestAccountUsecase_Get(t *testing.T) {
	uc, _, user := newAccountUC(t)

	got, err := uc.Get(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@test.com", got.Email)

	_, err = uc.Get(t.Context(), "nobody")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountUsecase_Delete_WrongPassword(t *testing.T) {
	uc, _, user := newAccountUC(t)

	err := uc.Delete(t.Context(), user.ID, "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = uc.Get(t.Context(), user.ID)
	assert.NoError(t, err)
}

func TestAccountUsecase_Delete_CascadesAndAudits(t *testing.T) {
	uc, gdb, user := newAccountUC(t)
	ctx := t.Context()

	_, err := repository.NewTaskGormRepository(gdb).Create(ctx, model.Task{ID: "t-1", UserID: user.ID, Title: "x"})
	require.NoError(t, err)
	require.NoError(t, repository.NewRefreshTokenRepository(gdb).Create(ctx, &model.RefreshToken{
		ID: "rt-1", UserID: user.ID, TokenHash: "h", ExpiresAt: testNow.Add(24 * time.Hour),
	}))

	require.NoError(t, uc.Delete(ctx, user.ID, "Passw0rd"))

	_, err = uc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	var n int64
	require.NoError(t, gdb.Model(&model.Task{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, gdb.Model(&model.RefreshToken{}).Count(&n).Error)
	assert.Zero(t, n)

	logs, err := uc.ListActivity(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionDeleteAccount, logs[0].Action)

	// 2回目は対象なし
	assert.ErrorIs(t, uc.Delete(ctx, user.ID, "Passw0rd"), ErrAccountNotFound)
}
