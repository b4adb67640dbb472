package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/users-service/internal/core/domain"
	"github.com/99minutos/users-service/internal/core/ports"
	"github.com/99minutos/users-service/internal/core/security"
)

func newTestUserService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewUserService(repo, security.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop()), repo
}

func TestUserService_Register(t *testing.T) {
	svc, repo := newTestUserService()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "abc12",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if user.Role != domain.RoleSimpleMortal {
		t.Fatalf("expected default role, got %q", user.Role)
	}
	if !user.IsActive || user.CreatedAt.IsZero() || user.LastLogin.IsZero() {
		t.Fatalf("unexpected defaults: %+v", user)
	}

	stored := repo.users[user.ID]
	if stored.HashedPass == "abc12" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPass), []byte("abc12")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_UniqueIDs(t *testing.T) {
	svc, _ := newTestUserService()
	a, _ := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "L", Password: "abc12"})
	b, _ := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "L", Password: "abc12"})
	if a.ID == b.ID {
		t.Fatalf("ids collide: %s", a.ID)
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestUserService()
	svc.newID = func() string { return "fixed" }

	if _, err := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "Lo", Password: "abc12"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Bob", LastName: "Lo", Password: "abc12"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Register_UnknownRole(t *testing.T) {
	svc, _ := newTestUserService()
	_, err := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "Lo", Role: "root", Password: "abc12"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	svc, repo := newTestUserService()
	user, _ := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "Lo", Password: "abc12"})
	oldHash := repo.users[user.ID].HashedPass

	name := "Augusta"
	pw := "xyz34"
	updated, err := svc.Update(context.Background(), user.ID, ports.ProfileUpdateInput{FirstName: &name, Password: &pw})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Augusta" {
		t.Fatalf("first name not updated: %+v", updated)
	}
	newHash := repo.users[user.ID].HashedPass
	if newHash == oldHash || bcrypt.CompareHashAndPassword([]byte(newHash), []byte("xyz34")) != nil {
		t.Fatalf("password not re-hashed")
	}
}

func TestUserService_Update_EmptyIsNoop(t *testing.T) {
	svc, repo := newTestUserService()
	user, _ := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "Lo", Password: "abc12"})

	got, err := svc.Update(context.Background(), user.ID, ports.ProfileUpdateInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ID != user.ID || repo.updates != 0 {
		t.Fatalf("expected no write, got %d updates", repo.updates)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := newTestUserService()
	name := "Nobody"
	if _, err := svc.Update(context.Background(), "ghost", ports.ProfileUpdateInput{FirstName: &name}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_ClampsPaging(t *testing.T) {
	svc, repo := newTestUserService()
	for _, id := range []string{"a", "b", "c"} {
		repo.users[id] = &domain.UserWithHash{User: domain.User{ID: id}}
	}

	got, err := svc.List(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 users, got %d", len(got))
	}

	got, _ = svc.List(context.Background(), 1, 1)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected page: %+v", got)
	}
}

func TestUserService_Remove(t *testing.T) {
	svc, repo := newTestUserService()
	user, _ := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Ada", LastName: "Lo", Password: "abc12"})

	if _, err := svc.Remove(context.Background(), user.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := repo.users[user.ID]; ok {
		t.Fatalf("user still stored")
	}
	if _, err := svc.Remove(context.Background(), user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
