package handler

import "github.com/99minutos/users-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type createUserRequest struct {
	FirstName string      `json:"first_name" validate:"required,min=2,max=24"`
	LastName  string      `json:"last_name"  validate:"required,min=2,max=24"`
	Role      domain.Role `json:"role"       validate:"omitempty,oneof=admin dev 'simple mortal'" example:"simple mortal"`
	Password  string      `json:"password"   validate:"required,min=5,max=24,password"`
}

// updateProfileRequest is the body of PATCH /users. Role is not accepted here.
type updateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=24"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=2,max=24"`
	IsActive  *bool   `json:"is_active"`
	Password  *string `json:"password"   validate:"omitempty,min=5,max=24,password"`
}

// updateUserRequest is the body of PATCH /users/:id. Passwords are not accepted here.
type updateUserRequest struct {
	FirstName *string      `json:"first_name" validate:"omitempty,min=2,max=24"`
	LastName  *string      `json:"last_name"  validate:"omitempty,min=2,max=24"`
	Role      *domain.Role `json:"role"       validate:"omitempty,oneof=admin dev 'simple mortal'"`
	IsActive  *bool        `json:"is_active"`
}

type listUsersQuery struct {
	Skip  int
	Limit int
}

// --- Tokens ---

type loginRequest struct {
	ID       string `json:"id"       form:"id"       validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=5,max=24"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required"`
}
