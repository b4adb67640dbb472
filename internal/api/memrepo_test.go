package api

import (
	"context"
	"sort"
	"sync"

	"github.com/99minutos/users-service/internal/core/domain"
)

// memRepo is an in-memory ports.UserRepository for end-to-end router tests.
type memRepo struct {
	mu    sync.Mutex
	users map[string]domain.UserWithHash
	err   error
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]domain.UserWithHash)}
}

func (r *memRepo) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u.User, nil
}

func (r *memRepo) GetWithHash(_ context.Context, id string) (*domain.UserWithHash, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memRepo) GetMulti(_ context.Context, skip, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []*domain.User{}
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		u := r.users[ids[i]].User
		out = append(out, &u)
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, user *domain.UserWithHash) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ID]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.ID] = *user
	out := user.User
	return &out, nil
}

func (r *memRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.HashedPass != nil {
		u.HashedPass = *upd.HashedPass
	}
	if upd.LastLogin != nil {
		u.LastLogin = *upd.LastLogin
	}
	r.users[id] = u
	return &u.User, nil
}

func (r *memRepo) Remove(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return &u.User, nil
}
