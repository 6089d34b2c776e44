package ports

import (
	"context"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// RefreshTokenRepository persists at most one refresh token per user.
type RefreshTokenRepository interface {
	// Replace atomically removes any token held by t.UserID and stores t.
	Replace(ctx context.Context, t *domain.RefreshToken) error
	// Rotate swaps oldToken for next only if oldToken is still the user's
	// current token. Returns domain.ErrRefreshTokenNotFound otherwise.
	Rotate(ctx context.Context, oldToken string, next *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	// DeleteByUser succeeds when the user holds no token.
	DeleteByUser(ctx context.Context, userID int64) error
}
