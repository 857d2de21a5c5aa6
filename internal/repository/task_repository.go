package repository

import (
	"context"
	"errors"
	"time"

	"taskapp/internal/domain/model"
)

var ErrTaskNotFound = errors.New("task not found")

// Taskの部分更新（nilは変更しない）
type TaskPatch struct {
	Title     *string
	Completed *bool
}

// Task(ToDo)を保存・取得する窓口
type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	//新しい順
	ListByUserID(ctx context.Context, userID string) ([]model.Task, error)
	//無ければErrTaskNotFound
	FindByID(ctx context.Context, taskID string) (model.Task, error)
	Update(ctx context.Context, taskID string, patch TaskPatch, now time.Time) error
	Delete(ctx context.Context, taskID string) error
}
