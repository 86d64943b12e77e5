package ports

import (
	"context"

	"github.com/inkroom/cms/internal/core/domain"
)

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

type ProfileInput struct {
	Username string
	Email    string
}

type AuthService interface {
	// Register always creates a viewer and logs it in.
	Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.Session, error)
	Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, caller *domain.User, sessionID string) error
	Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	UpdateProfile(ctx context.Context, caller *domain.User, in ProfileInput) (*domain.User, error)
}
