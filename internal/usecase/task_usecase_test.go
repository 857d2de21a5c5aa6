package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"
	auth "taskapp/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type TaskRepoMock struct{ mock.Mock }

func (m *TaskRepoMock) Create(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(model.Task)
	return created, args.Error(1)
}

func (m *TaskRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *TaskRepoMock) FindByID(ctx context.Context, taskID string) (model.Task, error) {
	args := m.Called(ctx, taskID)
	t, _ := args.Get(0).(model.Task)
	return t, args.Error(1)
}

func (m *TaskRepoMock) Update(ctx context.Context, taskID string, patch repo.TaskPatch, now time.Time) error {
	args := m.Called(ctx, taskID, patch, now)
	return args.Error(0)
}

func (m *TaskRepoMock) Delete(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("task-%d", g.n)
}

var testNow = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func newTaskUC() (*TaskUsecase, *TaskRepoMock) {
	r := new(TaskRepoMock)
	return NewTaskUsecase(r, &seqIDs{}, fixedClock{t: testNow}), r
}

// =====================
// Tests
// =====================

func TestTaskUsecase_Create_SanitizesAndTrims(t *testing.T) {
	uc, r := newTaskUC()
	ctx := context.Background()

	r.On("Create", ctx, mock.MatchedBy(func(task model.Task) bool {
		return task.Title == "Buy milk & eggs" && task.UserID == "u-1" && !task.Completed && task.CreatedAt.Equal(testNow)
	})).Return(model.Task{ID: "task-1", UserID: "u-1", Title: "Buy milk & eggs"}, nil)

	task, err := uc.Create(ctx, "u-1", "  <b>Buy</b> milk & eggs ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk & eggs", task.Title)
	r.AssertExpectations(t)
}

func TestTaskUsecase_Create_Validation(t *testing.T) {
	uc, r := newTaskUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "u-1", "   ")
	assert.ErrorIs(t, err, auth.ErrValidation)

	_, err = uc.Create(ctx, "u-1", strings.Repeat("x", 501))
	assert.ErrorIs(t, err, auth.ErrValidation)

	r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskUsecase_Get_OtherUsersTaskIsNotFound(t *testing.T) {
	uc, r := newTaskUC()
	ctx := context.Background()

	r.On("FindByID", ctx, "task-9").Return(model.Task{ID: "task-9", UserID: "someone-else"}, nil)
	r.On("FindByID", ctx, "missing").Return(model.Task{}, repo.ErrTaskNotFound)

	_, err := uc.Get(ctx, "u-1", "task-9")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = uc.Get(ctx, "u-1", "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskUsecase_Update_Partial(t *testing.T) {
	uc, r := newTaskUC()
	ctx := context.Background()

	done := true
	r.On("FindByID", ctx, "task-1").Return(model.Task{ID: "task-1", UserID: "u-1", Title: "t"}, nil)
	r.On("Update", ctx, "task-1", repo.TaskPatch{Completed: &done}, testNow).Return(nil)

	_, err := uc.Update(ctx, "u-1", "task-1", UpdateTaskInput{Completed: &done})
	require.NoError(t, err)
	r.AssertExpectations(t)
}

func TestTaskUsecase_Update_ForbiddenForOtherUser(t *testing.T) {
	uc, r := newTaskUC()
	ctx := context.Background()

	title := "hijack"
	r.On("FindByID", ctx, "task-1").Return(model.Task{ID: "task-1", UserID: "owner"}, nil)

	_, err := uc.Update(ctx, "intruder", "task-1", UpdateTaskInput{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	r.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskUsecase_Delete(t *testing.T) {
	uc, r := newTaskUC()
	ctx := context.Background()

	r.On("FindByID", ctx, "task-1").Return(model.Task{ID: "task-1", UserID: "u-1"}, nil)
	r.On("Delete", ctx, "task-1").Return(nil)

	require.NoError(t, uc.Delete(ctx, "u-1", "task-1"))

	dbErr := errors.New("db down")
	r2 := new(TaskRepoMock)
	uc2 := NewTaskUsecase(r2, &seqIDs{}, fixedClock{t: testNow})
	r2.On("FindByID", ctx, "task-1").Return(model.Task{}, dbErr)
	assert.ErrorIs(t, uc2.Delete(ctx, "u-1", "task-1"), dbErr)
}
