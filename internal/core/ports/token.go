package ports

import (
	"context"
	"time"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// AccessTokenCodec issues and validates signed access tokens.
type AccessTokenCodec interface {
	Issue(user *domain.User) (string, error)
	// Validate returns domain.ErrInvalidAccessToken for any bad, tampered or expired token.
	Validate(token string) (*domain.AccessClaims, error)
	TTL() time.Duration
}

// LoginThrottle counts failed logins per key inside a fixed window.
type LoginThrottle interface {
	// Blocked reports whether the key has reached its failure limit.
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
