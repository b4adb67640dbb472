package ports

import (
	"context"

	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/security"
)

type AuthService interface {
	Login(ctx context.Context, id, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}

// AccessTokenVerifier decodes an access token and checks its subject and
// expiry. Errors are the security.ErrToken* sentinels.
type AccessTokenVerifier interface {
	VerifyAccess(token string) (*security.Claims, error)
}
