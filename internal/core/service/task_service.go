package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type TaskService struct {
	repo   ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTaskService(repo ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, users: users, logger: logger, now: time.Now}
}

func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    domain.Priority(in.Priority),
		Assignee:    strings.TrimSpace(in.Assignee),
		CreatedBy:   in.CreatedBy,
	}
	task.ApplyDefaults()
	if err := domain.ValidateTask(task); err != nil {
		return nil, err
	}
	if err := domain.ValidateDueDate(task.DueDate, s.now()); err != nil {
		return nil, err
	}
	if !primitive.IsValidObjectID(task.CreatedBy) {
		return nil, domain.Invalid("createdBy", "is not a valid user id")
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("assignee", created.Assignee).Msg("task created")
	return created, nil
}

func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.repo.List(ctx)
}

// Get resolves the creator; a dangling reference leaves Creator nil.
func (s *TaskService) Get(ctx context.Context, id string) (*ports.TaskDetail, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.TaskDetail{Task: *task}
	creator, err := s.users.FindByID(ctx, task.CreatedBy)
	switch {
	case err == nil:
		ref := creator.Ref()
		ref.Role, ref.Bio = "", ""
		detail.Creator = &ref
	case errors.Is(err, domain.ErrUserNotFound):
	default:
		s.logger.Warn().Err(err).Str("task_id", id).Msg("failed to resolve task creator")
	}
	return detail, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch ports.TaskPatch) (*domain.Task, error) {
	if err := domain.TaskUpdatable.Check(patch.Fields); err != nil {
		return nil, err
	}
	if len(patch.Fields) == 0 {
		return nil, domain.Invalid("body", "no valid fields provided for update")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDate != nil {
		if err := domain.ValidateDueDate(*patch.DueDate, s.now()); err != nil {
			return nil, err
		}
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = domain.Priority(*patch.Priority)
	}
	if patch.Assignee != nil {
		task.Assignee = strings.TrimSpace(*patch.Assignee)
	}
	if err := domain.ValidateTask(task); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Strs("fields", patch.Fields).Msg("task updated")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}
