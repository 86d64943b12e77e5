package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/policy"
	"github.com/inkroom/cms/internal/core/ports"
)

// AuthConfig groups the settings AuthService needs from configuration.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Passwords PasswordPolicy
}

// AuthService implements registration, login and token authentication.
// Every token is bound to a session in the SessionStore; deleting the
// session revokes the token.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret []byte
	tokenTTL  time.Duration
	passwords PasswordPolicy
	logger    zerolog.Logger
	now       func() time.Time
	hashCost  int
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  ttl,
		passwords: cfg.Passwords,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a viewer account and opens a session for it. Field
// problems are reported together in a single ValidationError.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, *domain.Session, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	ve := domain.NewValidationError()
	checkUsername(ve, username)
	checkEmail(ve, email)
	if in.Password != in.PasswordConfirm {
		ve.Add("password_confirm", "the two password fields didn't match")
	}
	s.passwords.Check(ve, username, in.Password)

	if username != "" {
		existing, err := s.users.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, err
		}
		ensureUsernameFree(ve, existing, "")
	}
	if err := ve.Err(); err != nil {
		return nil, nil, err
	}

	hash, err := hashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.DefaultRole,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, session, nil
}

// Login verifies credentials. Unknown users, wrong passwords and inactive
// accounts are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		s.logger.Debug().Str("user_id", user.ID).Msg("login refused for inactive user")
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, session, nil
}

// Logout ends the session. Ending an already ended session succeeds.
func (s *AuthService) Logout(ctx context.Context, caller *domain.User, sessionID string) error {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", caller.ID).Msg("user logged out")
	return nil
}

// Authenticate resolves a bearer token into its user. The user record is
// reloaded on every call so role and active changes apply immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, nil, domain.ErrUnauthenticated
	}

	owner, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if owner != claims.Subject {
		return nil, nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, err
	}
	if !user.Active {
		return nil, nil, domain.ErrUnauthenticated
	}

	session := &domain.Session{ID: claims.ID, UserID: user.ID, Token: token}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return user, session, nil
}

// UpdateProfile lets a user change their own username and email.
func (s *AuthService) UpdateProfile(ctx context.Context, caller *domain.User, in ports.ProfileInput) (*domain.User, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	ve := domain.NewValidationError()
	checkUsername(ve, username)
	checkEmail(ve, email)
	if username != "" && username != user.Username {
		existing, err := s.users.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		ensureUsernameFree(ve, existing, user.ID)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	session.Token = signed

	if err := s.sessions.Save(ctx, session.ID, user.ID, s.tokenTTL); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to store session")
		return nil, err
	}
	return session, nil
}
