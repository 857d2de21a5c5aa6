package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"
	auth "taskapp/internal/usecase/auth_usecase"
	"taskapp/internal/validator"

	"github.com/microcosm-cc/bluemonday"
)

// 他人のタスクも「無い」として扱う
var ErrTaskNotFound = repo.ErrTaskNotFound

// PATCH /tasks/:id の入力（nilは変更しない）
type UpdateTaskInput struct {
	Title     *string
	Completed *bool
}

type TaskUsecase struct {
	tasks  repo.TaskRepository
	idGen  auth.IDGenerator
	clock  auth.Clock
	policy *bluemonday.Policy
}

// DI
func NewTaskUsecase(tasks repo.TaskRepository, idGen auth.IDGenerator, clock auth.Clock) *TaskUsecase {
	return &TaskUsecase{
		tasks:  tasks,
		idGen:  idGen,
		clock:  clock,
		policy: bluemonday.StrictPolicy(),
	}
}

// 新しい順
func (u *TaskUsecase) List(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := u.tasks.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) Create(ctx context.Context, userID string, title string) (model.Task, error) {
	clean, err := u.cleanTitle(title)
	if err != nil {
		return model.Task{}, err
	}

	now := u.clock.Now()
	task, err := u.tasks.Create(ctx, model.Task{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		Title:     clean,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) Get(ctx context.Context, userID string, taskID string) (model.Task, error) {
	task, err := u.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != userID {
		return model.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (u *TaskUsecase) Update(ctx context.Context, userID string, taskID string, in UpdateTaskInput) (model.Task, error) {
	if _, err := u.Get(ctx, userID, taskID); err != nil {
		return model.Task{}, err
	}

	patch := repo.TaskPatch{Completed: in.Completed}
	if in.Title != nil {
		clean, err := u.cleanTitle(*in.Title)
		if err != nil {
			return model.Task{}, err
		}
		patch.Title = &clean
	}

	if err := u.tasks.Update(ctx, taskID, patch, u.clock.Now()); err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}

	return u.Get(ctx, userID, taskID)
}

func (u *TaskUsecase) Delete(ctx context.Context, userID string, taskID string) error {
	if _, err := u.Get(ctx, userID, taskID); err != nil {
		return err
	}
	if err := u.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// タグを落としてプレーンテキストに戻してから長さを見る
func (u *TaskUsecase) cleanTitle(title string) (string, error) {
	plain := html.UnescapeString(u.policy.Sanitize(title))
	return validator.ValidateTaskTitle(plain)
}
