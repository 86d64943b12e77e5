package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkroom/cms/internal/core/domain"
)

const (
	ctxUser    = "auth.user"
	ctxSession = "auth.session"
)

// Authenticator resolves a bearer token into the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, *domain.Session, error)
}

// Auth requires a valid bearer token and injects the caller into the context.
// It only establishes identity; role checks happen in the services.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return authenticate(auth, false)
}

// OptionalAuth behaves like Auth but lets requests without an Authorization
// header through anonymously. A header that is present must still be valid.
func OptionalAuth(auth Authenticator) echo.MiddlewareFunc {
	return authenticate(auth, true)
}

func authenticate(auth Authenticator, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if optional {
					return next(c)
				}
				return unauthorized("missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthorized("invalid authorization header")
			}

			user, session, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return unauthorized("invalid token")
				}
				return err
			}

			c.Set(ctxUser, user)
			c.Set(ctxSession, session)
			return next(c)
		}
	}
}

// unauthorized builds a 401 that still matches domain.ErrUnauthenticated.
func unauthorized(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, msg).SetInternal(domain.ErrUnauthenticated)
}

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(ctxUser).(*domain.User)
	return u
}

// CurrentSession returns the session behind the request's token, if any.
func CurrentSession(c echo.Context) *domain.Session {
	s, _ := c.Get(ctxSession).(*domain.Session)
	return s
}

// SetCaller injects a caller directly. Handler tests use it instead of
// running the middleware.
func SetCaller(c echo.Context, u *domain.User, s *domain.Session) {
	c.Set(ctxUser, u)
	c.Set(ctxSession, s)
}
