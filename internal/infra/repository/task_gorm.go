package repository

import (
	"context"
	"errors"
	"time"

	"taskapp/internal/domain/model"
	repo "taskapp/internal/repository"

	"gorm.io/gorm"
)

type taskGormRepository struct {
	db *gorm.DB
}

func NewTaskGormRepository(db *gorm.DB) repo.TaskRepository {
	return &taskGormRepository{db: db}
}

func (r *taskGormRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// 新しい順（同時刻はIDで安定させる）
func (r *taskGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Task, error) {
	tasks := []model.Task{}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskGormRepository) FindByID(ctx context.Context, taskID string) (model.Task, error) {
	var t model.Task

	err := r.db.WithContext(ctx).
		Where("id = ?", taskID).
		First(&t).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Task{}, repo.ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return t, nil
}

// nilでない項目だけ更新する
func (r *taskGormRepository) Update(ctx context.Context, taskID string, patch repo.TaskPatch, now time.Time) error {
	updates := map[string]any{"updated_at": now}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	res := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrTaskNotFound
	}
	return nil
}

func (r *taskGormRepository) Delete(ctx context.Context, taskID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", taskID).
		Delete(&model.Task{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrTaskNotFound
	}
	return nil
}
