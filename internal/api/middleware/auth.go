package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/users-service/internal/api/metrics"
	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
	"github.com/99minutos/users-service/internal/core/security"
)

const authContextKey = "auth_context"

// Authenticate resolves every request to an AuthContext and stores it on the
// echo context. A missing, malformed, expired or forged token, or one whose
// subject no longer exists, resolves to the anonymous context; route guards
// decide whether that is acceptable. Only a repository failure aborts the
// request.
func Authenticate(tokens ports.AccessTokenVerifier, users ports.UserReader, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth, outcome, err := resolve(c, tokens, users)
			metrics.AuthResolutionsTotal.WithLabelValues(outcome).Inc()
			if err != nil {
				return err
			}
			if outcome != "authenticated" && outcome != "no_credentials" {
				log.Debug().
					Str("reason", outcome).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("request resolved to anonymous")
			}

			c.Set(authContextKey, auth)
			return next(c)
		}
	}
}

func resolve(c echo.Context, tokens ports.AccessTokenVerifier, users ports.UserReader) (domain.AuthContext, string, error) {
	token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return domain.Anonymous(), "no_credentials", nil
	}

	claims, err := tokens.VerifyAccess(token)
	if err != nil {
		return domain.Anonymous(), security.FailureReason(err), nil
	}

	user, err := users.Get(c.Request().Context(), claims.Subject)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.Anonymous(), "unknown_user", nil
	case err != nil:
		return domain.Anonymous(), "repository_error", fmt.Errorf("resolve authentication: %w", err)
	}

	return domain.Authenticated(user.ID, user.Role), "authenticated", nil
}

// bearerToken extracts <token> from "Bearer <token>". The scheme is matched
// case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// AuthContextFrom returns the context stored by Authenticate, or the
// anonymous context when the middleware did not run.
func AuthContextFrom(c echo.Context) domain.AuthContext {
	if auth, ok := c.Get(authContextKey).(domain.AuthContext); ok {
		return auth
	}
	return domain.Anonymous()
}
