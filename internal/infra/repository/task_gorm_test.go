package repository

import (
	"testing"
	"time"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CreateListNewestFirst(t *testing.T) {
	gdb := newTestDB(t)
	r := NewTaskGormRepository(gdb)
	ctx := t.Context()
	u := seedUser(t, gdb, "tasks@example.com")
	other := seedUser(t, gdb, "other@example.com")

	for i, title := range []string{"first", "second", "third"} {
		at := baseTime.Add(time.Duration(i) * time.Minute)
		_, err := r.Create(ctx, model.Task{
			ID: uuid.NewString(), UserID: u.ID, Title: title, CreatedAt: at, UpdatedAt: at,
		})
		require.NoError(t, err)
	}
	_, err := r.Create(ctx, model.Task{ID: uuid.NewString(), UserID: other.ID, Title: "not mine"})
	require.NoError(t, err)

	tasks, err := r.ListByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "first", tasks[2].Title)

	empty, err := r.ListByUserID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTaskRepo_UpdatePatch(t *testing.T) {
	gdb := newTestDB(t)
	r := NewTaskGormRepository(gdb)
	ctx := t.Context()
	u := seedUser(t, gdb, "patch@example.com")

	created, err := r.Create(ctx, model.Task{ID: uuid.NewString(), UserID: u.ID, Title: "before"})
	require.NoError(t, err)

	done := true
	later := baseTime.Add(time.Hour)
	require.NoError(t, r.Update(ctx, created.ID, repo.TaskPatch{Completed: &done}, later))

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)
	assert.True(t, got.Completed)
	assert.True(t, got.UpdatedAt.Equal(later))

	title := "after"
	require.NoError(t, r.Update(ctx, created.ID, repo.TaskPatch{Title: &title}, later))
	got, err = r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.Completed)

	err = r.Update(ctx, uuid.NewString(), repo.TaskPatch{Title: &title}, later)
	assert.ErrorIs(t, err, repo.ErrTaskNotFound)
}

func TestTaskRepo_Delete(t *testing.T) {
	gdb := newTestDB(t)
	r := NewTaskGormRepository(gdb)
	ctx := t.Context()
	u := seedUser(t, gdb, "rm@example.com")

	created, err := r.Create(ctx, model.Task{ID: uuid.NewString(), UserID: u.ID, Title: "x"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, repo.ErrTaskNotFound)
	assert.ErrorIs(t, r.Delete(ctx, created.ID), repo.ErrTaskNotFound)
}
