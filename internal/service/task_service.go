package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcortez/taskstack/internal/domain"
	"github.com/mcortez/taskstack/internal/repository"
	"gorm.io/datatypes"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    int
	DueDate     *time.Time
	Metadata    datatypes.JSON
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *int
	DueDate     *time.Time
	Metadata    datatypes.JSON
}

type ListTasksInput struct {
	Page   int
	Limit  int
	Filter domain.TaskFilter
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type TaskPage struct {
	Tasks      []*domain.Task
	Pagination Pagination
}

func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.Validation("Title must not be empty")
	}

	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Metadata:    input.Metadata,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the owner's task. A task owned by someone else yields the same
// NotFound as a task that does not exist.
func (s *TaskService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NotFound("Task not found")
	}
	return task, nil
}

// List returns one page of the owner's tasks. Out-of-range page or limit is
// rejected rather than clamped so clients get exactly what they asked for;
// defaulting for absent parameters happens at the HTTP boundary.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, input ListTasksInput) (*TaskPage, error) {
	page := input.Page
	limit := input.Limit

	if page < 1 {
		return nil, domain.Validation("Page must be at least 1")
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, domain.Validation("Limit must be between 1 and 100")
	}

	offset := (page - 1) * limit
	tasks, total, err := s.taskRepo.List(ctx, ownerID, input.Filter, limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) > 0 {
		totalPages++
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return &TaskPage{
		Tasks: tasks,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error) {
	fields := map[string]any{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, domain.Validation("Title must not be empty")
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
	}
	if input.Priority != nil {
		fields["priority"] = *input.Priority
	}
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.Metadata != nil {
		fields["metadata"] = input.Metadata
	}

	if len(fields) == 0 {
		return nil, domain.Validation("At least one field must be provided")
	}
	fields["updated_at"] = time.Now()

	task, err := s.taskRepo.Update(ctx, id, ownerID, fields)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NotFound("Task not found")
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.taskRepo.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("Task not found")
	}
	return nil
}
