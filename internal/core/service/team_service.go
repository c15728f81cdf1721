package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type TeamService struct {
	repo   ports.TeamRepository
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTeamService(repo ports.TeamRepository, users ports.UserRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{repo: repo, users: users, logger: logger, now: time.Now}
}

// Create starts a team with no members.
func (s *TeamService) Create(ctx context.Context, name string) (*ports.TeamDetail, error) {
	team := &domain.Team{
		Name:      strings.TrimSpace(name),
		Members:   []domain.TeamMember{},
		CreatedAt: s.now().UTC(),
	}
	if err := domain.ValidateTeam(team); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, team)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create team")
		return nil, err
	}

	s.logger.Info().Str("team_id", created.ID).Msg("team created")
	return s.populate(ctx, created), nil
}

func (s *TeamService) List(ctx context.Context) ([]*ports.TeamDetail, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	users := s.lookupUsers(ctx, teams...)
	out := make([]*ports.TeamDetail, len(teams))
	for i, t := range teams {
		out[i] = toTeamDetail(t, users)
	}
	return out, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*ports.TeamDetail, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, team), nil
}

func (s *TeamService) Update(ctx context.Context, id string, patch ports.TeamPatch) (*ports.TeamDetail, error) {
	if err := domain.TeamUpdatable.Check(patch.Fields); err != nil {
		return nil, err
	}

	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		team.Name = strings.TrimSpace(*patch.Name)
	}
	if err := domain.ValidateTeam(team); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Info().Str("team_id", id).Msg("team updated")
	return s.populate(ctx, team), nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("team_id", id).Msg("team deleted")
	return nil
}

// AddMember requires both the team and the user to exist. A user already on
// the team fails with domain.ErrAlreadyMember.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) (*ports.TeamDetail, error) {
	if _, err := s.repo.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	team, err := s.repo.AddMember(ctx, teamID, domain.TeamMember{
		UserID: user.ID,
		Role:   domain.MemberRoleFor(user),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("team_id", teamID).Str("user_id", userID).Msg("team member added")
	return s.populate(ctx, team), nil
}

// RemoveMember is idempotent: removing a non-member returns the team as is.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) (*ports.TeamDetail, error) {
	team, err := s.repo.RemoveMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, team), nil
}

func (s *TeamService) populate(ctx context.Context, team *domain.Team) *ports.TeamDetail {
	return toTeamDetail(team, s.lookupUsers(ctx, team))
}

// lookupUsers resolves every member of the given teams in one query. A lookup
// failure is logged and the members are returned unresolved.
func (s *TeamService) lookupUsers(ctx context.Context, teams ...*domain.Team) map[string]*domain.User {
	var ids []string
	seen := make(map[string]struct{})
	for _, t := range teams {
		for _, m := range t.Members {
			if _, ok := seen[m.UserID]; ok {
				continue
			}
			seen[m.UserID] = struct{}{}
			ids = append(ids, m.UserID)
		}
	}

	byID := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return byID
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to resolve team members")
		return byID
	}
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

func toTeamDetail(t *domain.Team, users map[string]*domain.User) *ports.TeamDetail {
	detail := &ports.TeamDetail{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		Members:   make([]ports.MemberDetail, len(t.Members)),
	}
	for i, m := range t.Members {
		md := ports.MemberDetail{UserID: m.UserID, Role: m.Role}
		if u, ok := users[m.UserID]; ok {
			md.Name, md.Email, md.Bio = u.Name, u.Email, u.Bio
		}
		detail.Members[i] = md
	}
	return detail
}
