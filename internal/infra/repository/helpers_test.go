package repository

import (
	"path/filepath"
	"testing"
	"time"

	"taskapp/internal/domain/model"
	"taskapp/internal/infra/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// テスト毎に使い捨てのSQLiteを作る
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, gdb *gorm.DB, email string) *model.User {
	t.Helper()

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
	require.NoError(t, NewUserGormRepository(gdb).Create(t.Context(), u))
	return u
}
