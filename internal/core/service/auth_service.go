package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/session"
)

// AuthOptions tunes registration and sign-in behaviour.
type AuthOptions struct {
	// AllowAdminSignUp lets anonymous callers register with the admin role.
	AllowAdminSignUp bool
	// Limiter throttles failed sign-ins per email. Nil disables throttling.
	Limiter ports.AttemptLimiter
}

// AuthService implements registration and sign-in.
type AuthService struct {
	repo   ports.UserRepository
	issuer *session.Issuer
	opts   AuthOptions
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, issuer *session.Issuer, opts AuthOptions, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, opts: opts, logger: logger, now: time.Now}
}

func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if role == domain.RoleAdmin && !s.opts.AllowAdminSignUp {
		return nil, domain.ErrForbidden
	}

	user := &domain.User{
		Name:        strings.TrimSpace(in.Name),
		FatherName:  strings.TrimSpace(in.FatherName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Address:     strings.TrimSpace(in.Address),
		Email:       domain.NormalizeEmail(in.Email),
		Bio:         in.Bio,
		Role:        role,
		CreatedAt:   s.now().UTC(),
	}

	if err := domain.ValidateRegistration(user, in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.opts.Limiter != nil {
		blocked, err := s.opts.Limiter.Blocked(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("sign-in limiter check failed, continuing")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset sign-in limiter")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("session issued")
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.opts.Limiter == nil {
		return
	}
	if err := s.opts.Limiter.Fail(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record sign-in failure")
	}
}
