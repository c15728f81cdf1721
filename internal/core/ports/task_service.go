package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	Assignee    string
	CreatedBy   string
}

// TaskPatch holds the decoded update body; Fields lists every key present.
type TaskPatch struct {
	Fields      []string
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Assignee    *string
}

// TaskDetail is a task with its creator resolved. Creator is nil when the
// referenced user no longer exists.
type TaskDetail struct {
	domain.Task
	Creator *domain.UserRef
}

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Get(ctx context.Context, id string) (*TaskDetail, error)
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
