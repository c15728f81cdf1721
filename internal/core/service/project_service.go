package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.ProjectStatus(in.Status),
		Priority:    domain.Priority(in.Priority),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		TeamMembers: in.TeamMembers,
		CreatedBy:   in.CreatedBy,
	}
	project.ApplyDefaults()
	if err := domain.ValidateProject(project); err != nil {
		return nil, err
	}
	if !primitive.IsValidObjectID(project.CreatedBy) {
		return nil, domain.Invalid("createdBy", "is not a valid user id")
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("created_by", created.CreatedBy).Msg("project created")
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// Update rejects the whole patch when any key falls outside
// domain.ProjectUpdatable. Status may move to any valid value.
func (s *ProjectService) Update(ctx context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	if err := domain.ProjectUpdatable.Check(patch.Fields); err != nil {
		return nil, err
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		project.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		project.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		project.Status = domain.ProjectStatus(*patch.Status)
	}
	if patch.Priority != nil {
		project.Priority = domain.Priority(*patch.Priority)
	}
	if patch.StartDate != nil {
		project.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		end := *patch.EndDate
		project.EndDate = &end
	}
	if err := domain.ValidateProject(project); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Strs("fields", patch.Fields).Msg("project updated")
	return project, nil
}

// Delete does not check ownership.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// AddMember records a user id on the project. The id must be an ObjectID
// but is not checked against the user store.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	if !primitive.IsValidObjectID(userID) {
		return nil, domain.Invalid("userId", "is not a valid user id")
	}
	return s.repo.AddMember(ctx, projectID, userID)
}

func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	return s.repo.RemoveMember(ctx, projectID, userID)
}
