package port

import (
	"context"

	"taskapp/pkg/auth"
)

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash is a
	// mismatch, not an error.
	Verify(ctx context.Context, password, hash string) bool
}

type TokenCodec interface {
	Issue(subject string) (string, error)
	Verify(token string) (*auth.Claims, error)
}
