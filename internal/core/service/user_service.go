package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/policy"
	"github.com/inkroom/cms/internal/core/ports"
)

// UserAdminService implements account management for admins.
type UserAdminService struct {
	repo      ports.UserRepository
	passwords PasswordPolicy
	logger    zerolog.Logger
	now       func() time.Time
	hashCost  int
}

func NewUserAdminService(repo ports.UserRepository, passwords PasswordPolicy, logger zerolog.Logger) *UserAdminService {
	return &UserAdminService{
		repo:      repo,
		passwords: passwords,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListUsers returns accounts matching filter, most recently joined first.
func (s *UserAdminService) ListUsers(ctx context.Context, caller *domain.User, filter ports.UserFilter) ([]*domain.User, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// CreateUser adds an account with an admin-chosen role.
func (s *UserAdminService) CreateUser(ctx context.Context, caller *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}

	ve := domain.NewValidationError()
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	checkUsername(ve, username)
	checkEmail(ve, email)
	s.passwords.Check(ve, username, in.Password)

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		ve.Add("role", "must be one of: admin, moderator, writer, viewer")
	}
	if err := s.checkTaken(ctx, ve, username, ""); err != nil {
		return nil, err
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	user, err := s.insert(ctx, username, email, in.Password, role, in.Active)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Str("admin_id", caller.ID).Msg("user created")
	return user, nil
}

// EditUser overwrites username, email, role and active flag. Admins may
// change their own role here; nothing prevents it.
func (s *UserAdminService) EditUser(ctx context.Context, caller *domain.User, id string, in ports.EditUserInput) (*domain.User, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ve := domain.NewValidationError()
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	checkUsername(ve, username)
	checkEmail(ve, email)

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		ve.Add("role", "must be one of: admin, moderator, writer, viewer")
	}
	if username != user.Username {
		if err := s.checkTaken(ctx, ve, username, user.ID); err != nil {
			return nil, err
		}
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.Role = role
	user.Active = in.Active
	user.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("role", role.String()).Bool("active", user.Active).Str("admin_id", caller.ID).Msg("user updated")
	return user, nil
}

// DeleteUser removes an account and its articles. Deleting yourself does
// nothing and reports no error. The boolean is true only when an account
// was removed.
func (s *UserAdminService) DeleteUser(ctx context.Context, caller *domain.User, id string) (bool, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return false, err
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	if target.ID == caller.ID {
		s.logger.Debug().Str("user_id", target.ID).Msg("self delete ignored")
		return false, nil
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		s.logger.Error().Err(err).Str("user_id", target.ID).Msg("failed to delete user")
		return false, err
	}

	s.logger.Info().Str("user_id", target.ID).Str("admin_id", caller.ID).Msg("user deleted")
	return true, nil
}

// EnsureAdmin creates an admin account unless username already exists.
// It runs without a caller and is meant for bootstrap tooling only.
// The boolean reports whether a new account was created.
func (s *UserAdminService) EnsureAdmin(ctx context.Context, in ports.CreateUserInput) (*domain.User, bool, error) {
	username := strings.TrimSpace(in.Username)

	existing, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, false, err
	}

	ve := domain.NewValidationError()
	email := strings.TrimSpace(in.Email)
	checkUsername(ve, username)
	checkEmail(ve, email)
	s.passwords.Check(ve, username, in.Password)
	if err := ve.Err(); err != nil {
		return nil, false, err
	}

	user, err := s.insert(ctx, username, email, in.Password, domain.RoleAdmin, true)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("admin account bootstrapped")
	return user, true, nil
}

func (s *UserAdminService) checkTaken(ctx context.Context, ve *domain.ValidationError, username, selfID string) error {
	if username == "" {
		return nil
	}
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	ensureUsernameFree(ve, existing, selfID)
	return nil
}

func (s *UserAdminService) insert(ctx context.Context, username, email, password string, role domain.Role, active bool) (*domain.User, error) {
	hash, err := hashPassword(password, s.hashCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
