package repository

import (
	"errors"
	"testing"
	"time"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_RollbackOnError(t *testing.T) {
	gdb := newTestDB(t)
	tm := NewTxManagerGorm(gdb)
	ctx := t.Context()
	u := seedUser(t, gdb, "tx@example.com")

	boom := errors.New("boom")
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.RefreshTokens().Create(ctx, newRefresh(u.ID, "in-tx", baseTime.Add(time.Hour))); err != nil {
			return err
		}
		if err := r.Users().UpdatePasswordHash(ctx, u.ID, "changed", baseTime); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := NewRefreshTokenRepository(gdb).FindActiveByTokenHash(ctx, "in-tx", baseTime)
	require.NoError(t, err)
	assert.Nil(t, got)

	user, err := NewUserGormRepository(gdb).FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestTxManager_Commit(t *testing.T) {
	gdb := newTestDB(t)
	tm := NewTxManagerGorm(gdb)
	ctx := t.Context()
	u := seedUser(t, gdb, "commit@example.com")

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.PasswordResetTokens().Create(ctx, newReset(u.ID, "h", baseTime.Add(time.Hour))); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  u.ID,
			Action:       model.AuditActionPasswordReset,
			ResourceType: model.AuditResourceUser,
			ResourceID:   u.ID,
			CreatedAt:    baseTime,
		})
	})
	require.NoError(t, err)

	n, err := NewPasswordResetTokenRepository(gdb).CountByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	logs, err := NewAuditLogGormRepository(gdb).List(ctx, repo.AuditLogFilter{ActorUserID: &u.ID})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestAuditLogRepo_ListFilterAndOrder(t *testing.T) {
	gdb := newTestDB(t)
	r := NewAuditLogGormRepository(gdb)
	ctx := t.Context()

	actor := uuid.NewString()
	someone := uuid.NewString()
	actions := []model.AuditAction{model.AuditActionRegister, model.AuditActionPasswordReset, model.AuditActionPasswordReset}
	for i, a := range actions {
		require.NoError(t, r.Create(ctx, model.AuditLog{
			ActorUserID:  actor,
			Action:       a,
			ResourceType: model.AuditResourceUser,
			ResourceID:   actor,
			CreatedAt:    baseTime.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, r.Create(ctx, model.AuditLog{
		ActorUserID: someone, Action: model.AuditActionRegister, ResourceType: model.AuditResourceUser, ResourceID: someone, CreatedAt: baseTime,
	}))

	logs, err := r.List(ctx, repo.AuditLogFilter{ActorUserID: &actor})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.True(t, logs[0].CreatedAt.After(logs[2].CreatedAt))
	assert.Equal(t, model.AuditActionRegister, logs[2].Action)

	reset := model.AuditActionPasswordReset
	logs, err = r.List(ctx, repo.AuditLogFilter{ActorUserID: &actor, Action: &reset, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
