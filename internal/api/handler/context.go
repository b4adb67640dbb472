package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/users-service/internal/api/middleware"
	"github.com/99minutos/users-service/internal/core/domain"
)

// callerID returns the id of the authenticated caller. Routes using it sit
// behind middleware.Requires(domain.ScopeAuthenticated); the check here keeps
// a misrouted handler from acting on an empty id.
func callerID(c echo.Context) (string, error) {
	auth := middleware.AuthContextFrom(c)
	if !auth.IsAuthenticated() {
		return "", domain.ErrUnauthenticated
	}
	return auth.UserID, nil
}
