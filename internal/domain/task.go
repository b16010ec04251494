package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task is a user-owned item. UserID is set at creation and never changes;
// every store operation on a task filters by id and owner together.
type Task struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Completed   bool           `json:"completed" gorm:"not null;default:false"`
	Priority    int            `json:"priority" gorm:"not null;default:0"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TaskFilter narrows a task listing. Nil fields match everything; the owner
// predicate is always applied by the repository on top of this.
type TaskFilter struct {
	Completed *bool
	Priority  *int
}
