package ports

import "context"

// PasswordHasher hashes and verifies credentials. Verify returns false, not an
// error, on a mismatch.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}
