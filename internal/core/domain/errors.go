package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidRole         = errors.New("role must be USER or ADMIN")
	ErrInvalidPassword     = errors.New("password must be 8-72 bytes")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrJournalNotFound     = errors.New("journal not found")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")

	// ErrRefreshTokenNotFound is returned by stores when no record matches.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// ErrRefreshTokenExpired is a refinement of ErrInvalidRefreshToken.
var ErrRefreshTokenExpired = fmt.Errorf("refresh token expired: %w", ErrInvalidRefreshToken)
