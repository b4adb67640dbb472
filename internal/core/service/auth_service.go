package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
	"github.com/99minutos/users-service/internal/core/security"
)

// AuthService implements login and refresh-token exchange.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens *TokenService
	log    zerolog.Logger

	decoyMu   sync.Mutex
	decoyHash string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login verifies id and password and issues a token pair. An unknown id and a
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, id, password string) (*domain.TokenPair, error) {
	if id == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetWithHash(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparable amount of time so response latency does not
			// reveal whether the id exists.
			_, _ = s.hasher.Verify(ctx, password, s.decoy(ctx))
			s.log.Debug().Str("user_id", id).Str("reason", "unknown_user").Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.HashedPass)
	if err != nil {
		return nil, fmt.Errorf("login: verify password: %w", err)
	}
	if !ok {
		s.log.Debug().Str("user_id", id).Str("reason", "wrong_password").Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue tokens: %w", err)
	}

	now := s.tokens.codec.Now().UTC()
	if _, err := s.users.Update(ctx, user.ID, domain.UserUpdate{LastLogin: &now}); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is returned unchanged; it stays valid until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		s.log.Debug().Str("reason", security.FailureReason(err)).Msg("refresh rejected")
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.Get(ctx, claims.Subject); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("user_id", claims.Subject).Str("reason", "unknown_user").Msg("refresh rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	access, err := s.tokens.IssueAccess(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("refresh: issue access token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

// decoy returns the hash verified against when the id is unknown. It is built
// detached from the request so a cancelled caller cannot leave it empty, and
// it is only cached once a build succeeds.
func (s *AuthService) decoy(ctx context.Context) string {
	s.decoyMu.Lock()
	defer s.decoyMu.Unlock()

	if s.decoyHash != "" {
		return s.decoyHash
	}
	h, err := s.hasher.Hash(context.WithoutCancel(ctx), "decoy-password-0")
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to build decoy hash")
		return ""
	}
	s.decoyHash = h
	return h
}
