package ports

import (
	"context"

	"github.com/inkroom/cms/internal/core/domain"
)

// CreateUserInput is used by admins, who may pick the role up front.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Active   bool
}

// EditUserInput carries the full set of admin-editable fields.
type EditUserInput struct {
	Username string
	Email    string
	Role     string
	Active   bool
}

type UserAdminService interface {
	ListUsers(ctx context.Context, caller *domain.User, filter UserFilter) ([]*domain.User, error)
	CreateUser(ctx context.Context, caller *domain.User, in CreateUserInput) (*domain.User, error)
	EditUser(ctx context.Context, caller *domain.User, id string, in EditUserInput) (*domain.User, error)
	// DeleteUser is a silent no-op when id is the caller's own account.
	// The boolean reports whether an account was actually removed.
	DeleteUser(ctx context.Context, caller *domain.User, id string) (bool, error)
}
