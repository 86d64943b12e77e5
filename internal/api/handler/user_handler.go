package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkroom/cms/internal/api/metrics"
	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

// UserHandler exposes the admin user management endpoints.
type UserHandler struct {
	service ports.UserAdminService
}

func NewUserHandler(service ports.UserAdminService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns all users, most recently joined first.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role"
// @Param        active  query     bool    false  "Filter by active flag"
// @Param        q       query     string  false  "Search username or email"
// @Success      200     {object}  userListResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}

	filter := ports.UserFilter{Active: active, Search: c.QueryParam("q")}
	if raw := strings.TrimSpace(c.QueryParam("role")); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return err
		}
		filter.Role = role
	}

	users, err := h.service.ListUsers(c.Request().Context(), caller(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserList(users))
}

// Create adds an account with the given role.
//
// @Summary      Create user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), caller(c), toCreateUserInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userEnvelope{Message: "user created successfully", User: toUserResponse(user)})
}

// Update overwrites username, email, role and active flag.
//
// @Summary      Edit user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "User ID"
// @Param        body  body      editUserRequest  true  "User"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req editUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.EditUser(c.Request().Context(), caller(c), c.Param("id"), toEditUserInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{Message: "user updated successfully", User: toUserResponse(user)})
}

// Delete removes an account and its articles. Deleting yourself is ignored.
//
// @Summary      Delete user
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	deleted, err := h.service.DeleteUser(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}

	if deleted {
		metrics.UsersDeletedTotal.Inc()
	}
	return c.NoContent(http.StatusNoContent)
}
