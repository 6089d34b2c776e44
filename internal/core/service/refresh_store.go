package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

// DefaultRefreshTokenTTL is the lifetime of a refresh token.
const DefaultRefreshTokenTTL = 24 * time.Hour

// RefreshTokenStore issues, verifies and rotates refresh tokens. Each user
// holds at most one; issuing a new one replaces the previous one atomically.
type RefreshTokenStore struct {
	repo     ports.RefreshTokenRepository
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
	log      zerolog.Logger
}

func NewRefreshTokenStore(repo ports.RefreshTokenRepository, ttl time.Duration, log zerolog.Logger) *RefreshTokenStore {
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	return &RefreshTokenStore{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
		log:      log,
	}
}

// Issue replaces whatever token the user held with a fresh one.
func (s *RefreshTokenStore) Issue(ctx context.Context, userID int64) (*domain.RefreshToken, error) {
	t := s.build(userID)
	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return t, nil
}

// Lookup returns domain.ErrRefreshTokenNotFound when the value is unknown.
func (s *RefreshTokenStore) Lookup(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if token == "" {
		return nil, domain.ErrRefreshTokenNotFound
	}
	t, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	return t, nil
}

// Verify deletes an expired token and fails with domain.ErrRefreshTokenExpired.
// A live token is returned unchanged; its expiry is never extended.
func (s *RefreshTokenStore) Verify(ctx context.Context, t *domain.RefreshToken) (*domain.RefreshToken, error) {
	if !t.Expired(s.now()) {
		return t, nil
	}
	if err := s.repo.DeleteByToken(ctx, t.Token); err != nil {
		s.log.Warn().Err(err).Int64("user_id", t.UserID).Msg("failed to delete expired refresh token")
	}
	return nil, domain.ErrRefreshTokenExpired
}

// Rotate replaces current with a new token, provided current is still the
// user's active token. Of several concurrent rotations of the same token
// exactly one succeeds; the rest get domain.ErrInvalidRefreshToken.
func (s *RefreshTokenStore) Rotate(ctx context.Context, current *domain.RefreshToken) (*domain.RefreshToken, error) {
	next := s.build(current.UserID)
	if err := s.repo.Rotate(ctx, current.Token, next); err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	return next, nil
}

// RevokeAll removes the user's token, if any.
func (s *RefreshTokenStore) RevokeAll(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) build(userID int64) *domain.RefreshToken {
	now := s.now().UTC().Truncate(time.Millisecond)
	return &domain.RefreshToken{
		Token:     s.newToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
}
