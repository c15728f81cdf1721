package domain

import (
	"strings"
	"time"
)

// DefaultMemberRole is used when the added user carries no role.
const DefaultMemberRole = "Member"

// TeamUpdatable lists the fields accepted by a team update. Members change
// only through the add and remove operations.
var TeamUpdatable = AllowList{"name"}

type TeamMember struct {
	UserID string `json:"user"`
	Role   string `json:"role"`
}

// Team holds an ordered member list in which a user appears at most once.
type Team struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Members   []TeamMember `json:"members"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (t *Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberRoleFor derives the role recorded for a new member.
func MemberRoleFor(u *User) string {
	if u == nil || u.Role == "" {
		return DefaultMemberRole
	}
	return u.Role
}

func ValidateTeam(t *Team) error {
	if strings.TrimSpace(t.Name) == "" {
		return Invalid("name", "is required")
	}
	return nil
}
