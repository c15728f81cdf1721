package ports

import (
	"context"
	"time"
)

// TeamPatch holds the decoded update body; Fields lists every key present.
type TeamPatch struct {
	Fields []string
	Name   *string
}

// MemberDetail is a team member with the user resolved. Name, Email and Bio
// stay empty when the referenced user no longer exists.
type MemberDetail struct {
	UserID string
	Name   string
	Email  string
	Bio    string
	Role   string
}

type TeamDetail struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Members   []MemberDetail
}

type TeamService interface {
	Create(ctx context.Context, name string) (*TeamDetail, error)
	List(ctx context.Context) ([]*TeamDetail, error)
	Get(ctx context.Context, id string) (*TeamDetail, error)
	Update(ctx context.Context, id string, patch TeamPatch) (*TeamDetail, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID, userID string) (*TeamDetail, error)
	RemoveMember(ctx context.Context, teamID, userID string) (*TeamDetail, error)
}
