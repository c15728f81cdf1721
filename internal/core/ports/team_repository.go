package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	FindByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Delete(ctx context.Context, id string) error
	// AddMember appends the member unless the user is already listed
	// (domain.ErrAlreadyMember). The check and the append are one write.
	AddMember(ctx context.Context, teamID string, member domain.TeamMember) (*domain.Team, error)
	// RemoveMember pulls every entry for userID; absent members are ignored.
	RemoveMember(ctx context.Context, teamID, userID string) (*domain.Team, error)
}
