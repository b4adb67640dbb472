package domain

// ScopeAuthenticated is granted to every caller holding a valid access token.
const ScopeAuthenticated = "authenticated"

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// TokenPair is the result of a login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthContext is the request-scoped result of authentication resolution.
// The zero value is the anonymous context.
type AuthContext struct {
	UserID string
	Role   Role
	Scopes []string
}

// Anonymous returns a context with no identity and no scopes.
func Anonymous() AuthContext {
	return AuthContext{}
}

// Authenticated returns a context for user with scopes {"authenticated", role}.
func Authenticated(userID string, role Role) AuthContext {
	return AuthContext{
		UserID: userID,
		Role:   role,
		Scopes: []string{ScopeAuthenticated, string(role)},
	}
}

// IsAuthenticated reports whether the context carries an identity.
func (a AuthContext) IsAuthenticated() bool {
	return a.UserID != ""
}

// HasScopes reports whether every required scope is granted.
func (a AuthContext) HasScopes(required ...string) bool {
	for _, r := range required {
		found := false
		for _, s := range a.Scopes {
			if s == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CheckScopes is the route guard. An anonymous caller lacking scopes gets
// ErrUnauthenticated; an authenticated one gets ErrForbidden.
func CheckScopes(a AuthContext, required ...string) error {
	if a.HasScopes(required...) {
		return nil
	}
	if !a.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
