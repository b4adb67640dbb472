package domain

import "time"

// Role is both a user attribute and an authorization scope.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDev          Role = "dev"
	RoleSimpleMortal Role = "simple mortal"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDev, RoleSimpleMortal:
		return true
	}
	return false
}

// User is the public view of an account. The password hash is deliberately
// absent; only UserWithHash carries it.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

// UserWithHash is returned only to the authentication path.
type UserWithHash struct {
	User
	HashedPass string `json:"-"`
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	FirstName  *string
	LastName   *string
	Role       *Role
	IsActive   *bool
	HashedPass *string
	LastLogin  *time.Time
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Role == nil &&
		u.IsActive == nil && u.HashedPass == nil && u.LastLogin == nil
}
