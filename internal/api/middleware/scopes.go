package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/users-service/internal/core/domain"
)

// Requires guards a route on the scopes of the resolved AuthContext.
// Anonymous callers get domain.ErrUnauthenticated, authenticated callers
// missing a scope get domain.ErrForbidden.
func Requires(scopes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.CheckScopes(AuthContextFrom(c), scopes...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
