package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkroom/cms/internal/api/middleware"
	"github.com/inkroom/cms/internal/core/domain"
)

// caller returns the user injected by the auth middleware, or nil when the
// request is anonymous. Services turn a nil caller into ErrUnauthenticated
// wherever identity is required.
func caller(c echo.Context) *domain.User {
	return middleware.CurrentUser(c)
}

// sessionID returns the ID of the session behind the request's token.
func sessionID(c echo.Context) string {
	if s := middleware.CurrentSession(c); s != nil {
		return s.ID
	}
	return ""
}

// queryBool parses an optional boolean query parameter.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be true or false")
	}
	return &v, nil
}
