package ports

import (
	"context"

	"github.com/99minutos/users-service/internal/core/domain"
)

// UserRepository is the document-store collaborator keyed by the opaque user id.
// Lookups of a missing id return domain.ErrUserNotFound; store failures wrap
// domain.ErrRepositoryUnavailable.
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	// GetWithHash is the only read path that exposes the password hash.
	GetWithHash(ctx context.Context, id string) (*domain.UserWithHash, error)
	GetMulti(ctx context.Context, skip, limit int) ([]*domain.User, error)
	// Create fails with domain.ErrUserExists on an id collision.
	Create(ctx context.Context, user *domain.UserWithHash) (*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	Remove(ctx context.Context, id string) (*domain.User, error)
}

// UserReader is the subset the authentication middleware needs.
type UserReader interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}
