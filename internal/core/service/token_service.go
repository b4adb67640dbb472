package service

import (
	"errors"
	"time"

	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/security"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 24 * time.Hour
)

// TokenConfig holds the two independent key/TTL pairs.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Algorithm     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService issues and verifies access and refresh tokens.
type TokenService struct {
	codec      *security.Codec
	accessKey  security.SigningKey
	refreshKey security.SigningKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(codec *security.Codec, cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	accessKey, err := security.NewSigningKey(cfg.AccessSecret, cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	refreshKey, err := security.NewSigningKey(cfg.RefreshSecret, cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		codec:      codec,
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// IssuePair signs a fresh access and refresh token for subject.
func (s *TokenService) IssuePair(subject string) (*domain.TokenPair, error) {
	access, err := s.IssueAccess(subject)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Issue(subject, s.refreshKey, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
	}, nil
}

func (s *TokenService) IssueAccess(subject string) (string, error) {
	return s.codec.Issue(subject, s.accessKey, s.accessTTL)
}

func (s *TokenService) VerifyAccess(token string) (*security.Claims, error) {
	return s.verify(token, s.accessKey)
}

func (s *TokenService) VerifyRefresh(token string) (*security.Claims, error) {
	return s.verify(token, s.refreshKey)
}

func (s *TokenService) verify(token string, key security.SigningKey) (*security.Claims, error) {
	claims, err := s.codec.Decode(token, key)
	if err != nil {
		return nil, err
	}
	if err := claims.Validate(s.codec.Now()); err != nil {
		return nil, err
	}
	return claims, nil
}
