package ports

import (
	"context"

	"github.com/99minutos/users-service/internal/core/domain"
)

// RegisterInput carries a registration request after transport validation.
type RegisterInput struct {
	FirstName string
	LastName  string
	Role      domain.Role
	Password  string
}

// ProfileUpdateInput is a partial update. Password, when set, is re-hashed.
type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
	IsActive  *bool
	Password  *string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id string, in ProfileUpdateInput) (*domain.User, error)
	Remove(ctx context.Context, id string) (*domain.User, error)
}
