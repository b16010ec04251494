package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mcortez/taskstack/internal/domain"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		First(&task, "id = ? AND user_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns one page of the owner's tasks plus the total count matching
// the same predicate, newest first with id as a stable tie-break.
func (r *taskRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter, limit, offset int) ([]*domain.Task, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("user_id = ?", ownerID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*domain.Task
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies the given column map to the row matching id and owner. It
// returns (nil, nil) when no row matched, so a caller cannot tell a missing
// task apart from someone else's.
func (r *taskRepository) Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]any) (*domain.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id, ownerID)
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&domain.Task{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
