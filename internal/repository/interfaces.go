package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcortez/taskstack/internal/domain"
)

// Absence is a value, not an error: lookups return (nil, nil) and Delete
// returns false when nothing matches. Services translate absence into the
// appropriate error kind at their boundary.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter, limit, offset int) ([]*domain.Task, int64, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]any) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Task    TaskRepository
}
