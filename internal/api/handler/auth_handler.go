package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/users-service/internal/api/metrics"
	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
)

// AuthHandler serves the token endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges an id and password for an access and refresh token.
//
// @Summary      Retrieve authorization tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.TokenPair
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /users/token [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.ID, req.Password)
	metrics.LoginAttemptsTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token is returned unchanged.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  domain.TokenPair
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /users/refresh_token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	metrics.TokenRefreshTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
