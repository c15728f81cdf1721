package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// SignUpInput carries the registration form.
type SignUpInput struct {
	Name        string
	FatherName  string
	PhoneNumber string
	Address     string
	Email       string
	Bio         string
	Password    string
	Role        string
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	// SignIn returns a signed session token. Unknown email and wrong password
	// fail identically with domain.ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
}
