package service

import (
	"context"
	"sort"

	"github.com/99minutos/users-service/internal/core/domain"
)

type stubUserRepo struct {
	users    map[string]*domain.UserWithHash
	getErr   error
	updates  int
	failNext error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.UserWithHash)}
}

func cloneUser(u *domain.UserWithHash) *domain.UserWithHash {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Get(_ context.Context, id string) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := u.User
	return &out, nil
}

func (r *stubUserRepo) GetWithHash(_ context.Context, id string) (*domain.UserWithHash, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetMulti(_ context.Context, skip, limit int) ([]*domain.User, error) {
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

func (r *stubUserRepo) Create(_ context.Context, user *domain.UserWithHash) (*domain.User, error) {
	if _, exists := r.users[user.ID]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	out := user.User
	return &out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
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
	out := u.User
	return &out, nil
}

func (r *stubUserRepo) Remove(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	out := u.User
	return &out, nil
}
