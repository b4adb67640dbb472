package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/users-service/internal/api/metrics"
	"github.com/99minutos/users-service/internal/api/middleware"
	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
	"github.com/99minutos/users-service/internal/core/service"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new user.
// Registration is open, but only an admin may create another admin.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Role == domain.RoleAdmin {
		auth := middleware.AuthContextFrom(c)
		if err := domain.CheckScopes(auth, domain.ScopeAuthenticated, string(domain.RoleAdmin)); err != nil {
			return err
		}
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, user)
}

// Profile returns the authenticated caller's profile.
//
// @Summary      Retrieve profile of authorized user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get returns a user by id.
//
// @Summary      Retrieve profile by user ID
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns a page of users.
//
// @Summary      Retrieve list of users
// @Tags         users
// @Produce      json
// @Param        skip   query     int  false  "Users to skip"       default(0)
// @Param        limit  query     int  false  "Page size (max 100)" default(12)
// @Success      200    {array}   domain.User
// @Failure      400    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	q := listUsersQuery{Skip: 0, Limit: service.DefaultListLimit}
	if err := echo.QueryParamsBinder(c).
		Int("skip", &q.Skip).
		Int("limit", &q.Limit).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	if q.Skip < 0 || q.Limit < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "skip and limit must not be negative")
	}

	users, err := h.service.List(c.Request().Context(), q.Skip, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateProfile edits the authenticated caller's profile.
//
// @Summary      Edit profile of authorized user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update edits any user's profile. Admin only.
//
// @Summary      Edit user's profile by ID
// @Description  Usage is allowed only for the admin role.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Remove deletes the authenticated caller's account.
//
// @Summary      Remove authorized user
// @Tags         users
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /users [delete]
func (h *UserHandler) Remove(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
