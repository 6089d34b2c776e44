package ports

import (
	"context"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// RegisterInput carries the registration request.
type RegisterInput struct {
	Email    string
	Password string
	Role     string // optional, defaults to USER
	IP       string
}

// LoginInput carries the login request.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// AuthService orchestrates the session flows.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.TokenPair, error)
	Login(ctx context.Context, input LoginInput) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken, ip string) (*domain.TokenPair, error)
	// Logout revokes the caller's refresh token. Access tokens stay valid until expiry.
	Logout(ctx context.Context, principal domain.Principal, ip string) error
	CurrentUser(ctx context.Context, principal domain.Principal) (*domain.User, error)
}
