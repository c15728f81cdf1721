package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type CreateProjectInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	StartDate   time.Time
	EndDate     *time.Time
	TeamMembers []string
	CreatedBy   string
}

// ProjectPatch holds the decoded update body; Fields lists every key present.
type ProjectPatch struct {
	Fields      []string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
	RemoveMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
}
