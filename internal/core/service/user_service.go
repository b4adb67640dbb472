package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
)

const (
	DefaultListLimit = 12
	MaxListLimit     = 100
)

// UserService implements registration and profile management on top of the
// document-store repository.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Register creates an active user with a server-assigned UUID.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleSimpleMortal
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.UserWithHash{
		User: domain.User{
			ID:        s.newID(),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      role,
			IsActive:  true,
			CreatedAt: now,
			LastLogin: now,
		},
		HashedPass: hash,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

// List returns a page of users. limit is clamped to [1, MaxListLimit] with
// DefaultListLimit for non-positive values.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.users.GetMulti(ctx, skip, limit)
}

// Update applies a partial update. An empty update returns the current user.
func (s *UserService) Update(ctx context.Context, id string, in ports.ProfileUpdateInput) (*domain.User, error) {
	upd := domain.UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		IsActive:  in.IsActive,
	}
	if upd.Role != nil && !upd.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *upd.Role)
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(ctx, *in.Password)
		if err != nil {
			return nil, fmt.Errorf("update: hash password: %w", err)
		}
		upd.HashedPass = &hash
	}

	if upd.Empty() {
		return s.users.Get(ctx, id)
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Remove(ctx context.Context, id string) (*domain.User, error) {
	removed, err := s.users.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user removed")
	return removed, nil
}
