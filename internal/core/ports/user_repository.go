package ports

import (
	"context"

	"github.com/inkroom/cms/internal/core/domain"
)

// UserFilter narrows a user listing. Zero values mean "no filter".
type UserFilter struct {
	Role   domain.Role // optional: exact role match
	Active *bool       // optional: active flag
	Search string      // optional: case-insensitive match on username or email
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create assigns the ID and returns domain.DuplicateUsername() when the
	// username is taken.
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns matching users, most recently joined first.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// Update persists username, email, password hash, role, active flag and
	// the update timestamp. The join date is never rewritten.
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the user and every article it authored atomically.
	Delete(ctx context.Context, id string) error
}
