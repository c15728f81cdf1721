package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies an allow-listed patch. When actor is set, non-admins may only
// edit their own record and may not change any role.
func (s *UserService) Update(ctx context.Context, id string, patch ports.UserPatch, actor *ports.Actor) (*domain.User, error) {
	if err := domain.UserUpdatable.Check(patch.Fields); err != nil {
		return nil, err
	}
	if len(patch.Fields) == 0 {
		return nil, domain.Invalid("body", "no valid fields provided for update")
	}
	if actor != nil && !actor.IsAdmin() {
		if actor.UserID != id || patch.Role != nil {
			return nil, domain.ErrForbidden
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.FatherName != nil {
		user.FatherName = strings.TrimSpace(*patch.FatherName)
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.Address != nil {
		user.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Email != nil {
		user.Email = domain.NormalizeEmail(*patch.Email)
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		if msg := domain.PasswordProblem(*patch.Password); msg != "" {
			return nil, domain.Invalid("password", msg)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Strs("fields", patch.Fields).Msg("user updated")
	return user, nil
}

// Delete removes the user only; records referencing it are left in place.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
