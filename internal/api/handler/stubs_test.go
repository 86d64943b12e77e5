package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkroom/cms/internal/api/middleware"
	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubArticleService struct {
	listVisibleFn func(ctx context.Context, caller *domain.User) ([]*domain.Article, error)
	createFn      func(ctx context.Context, caller *domain.User, in ports.ArticleInput) (*domain.Article, error)
	editFn        func(ctx context.Context, caller *domain.User, id string, in ports.ArticleInput) (*domain.Article, error)
	toggleFn      func(ctx context.Context, caller *domain.User, id string) (*domain.Article, error)
	viewFn        func(ctx context.Context, caller *domain.User, id string) (*domain.Article, error)
	moderationFn  func(ctx context.Context, caller *domain.User, f ports.ArticleFilter) ([]*domain.Article, error)
}

func (s *stubArticleService) ListVisible(ctx context.Context, caller *domain.User) ([]*domain.Article, error) {
	return s.listVisibleFn(ctx, caller)
}

func (s *stubArticleService) Create(ctx context.Context, caller *domain.User, in ports.ArticleInput) (*domain.Article, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubArticleService) Edit(ctx context.Context, caller *domain.User, id string, in ports.ArticleInput) (*domain.Article, error) {
	return s.editFn(ctx, caller, id, in)
}

func (s *stubArticleService) ToggleStatus(ctx context.Context, caller *domain.User, id string) (*domain.Article, error) {
	return s.toggleFn(ctx, caller, id)
}

func (s *stubArticleService) View(ctx context.Context, caller *domain.User, id string) (*domain.Article, error) {
	return s.viewFn(ctx, caller, id)
}

func (s *stubArticleService) ListForModeration(ctx context.Context, caller *domain.User, f ports.ArticleFilter) ([]*domain.Article, error) {
	return s.moderationFn(ctx, caller, f)
}

type stubUserService struct {
	listFn   func(ctx context.Context, caller *domain.User, f ports.UserFilter) ([]*domain.User, error)
	createFn func(ctx context.Context, caller *domain.User, in ports.CreateUserInput) (*domain.User, error)
	editFn   func(ctx context.Context, caller *domain.User, id string, in ports.EditUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, caller *domain.User, id string) (bool, error)
}

func (s *stubUserService) ListUsers(ctx context.Context, caller *domain.User, f ports.UserFilter) ([]*domain.User, error) {
	return s.listFn(ctx, caller, f)
}

func (s *stubUserService) CreateUser(ctx context.Context, caller *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubUserService) EditUser(ctx context.Context, caller *domain.User, id string, in ports.EditUserInput) (*domain.User, error) {
	return s.editFn(ctx, caller, id, in)
}

func (s *stubUserService) DeleteUser(ctx context.Context, caller *domain.User, id string) (bool, error) {
	return s.deleteFn(ctx, caller, id)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, *domain.Session, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, *domain.Session, error)
	logoutFn   func(ctx context.Context, caller *domain.User, sessionID string) error
	profileFn  func(ctx context.Context, caller *domain.User, in ports.ProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, *domain.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, caller *domain.User, sessionID string) error {
	return s.logoutFn(ctx, caller, sessionID)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, *domain.Session, error) {
	return nil, nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, caller *domain.User, in ports.ProfileInput) (*domain.User, error) {
	return s.profileFn(ctx, caller, in)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	adminUser  = &domain.User{ID: "u-admin", Username: "root", Role: domain.RoleAdmin, Active: true}
	writerUser = &domain.User{ID: "u-writer", Username: "wes", Role: domain.RoleWriter, Active: true}
)

// newContext builds an echo context for method/target with an optional JSON
// body and caller. Path params are set from the pairs in params.
func newContext(method, target, body string, u *domain.User, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if u != nil {
		middleware.SetCaller(c, u, &domain.Session{ID: "sess-1", UserID: u.ID})
	}
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}
