package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit in bytes
)

// dummyHash is compared against when the email is unknown so that both login
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("journal-system-placeholder"), bcrypt.DefaultCost)
	return h
})

// AuthService implements registration, login, refresh and logout.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.AccessTokenCodec
	refresh  *RefreshTokenStore
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger
	cost     int
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.AccessTokenCodec,
	refresh *RefreshTokenStore,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		refresh:  refresh,
		throttle: throttle,
		audit:    audit,
		log:      log.With().Str("component", "auth").Logger(),
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates a USER (or ADMIN when asked) and opens a session for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.TokenPair, error) {
	email := domain.NormalizeEmail(in.Email)
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if n := len(in.Password); n < minPasswordLen || n > maxPasswordLen {
		return nil, domain.ErrInvalidPassword
	}

	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.record(domain.AuthEventRegister, 0, email, in.IP, false)
		return nil, domain.ErrEmailInUse
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			s.record(domain.AuthEventRegister, 0, email, in.IP, false)
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	s.record(domain.AuthEventRegister, user.ID, email, in.IP, true)
	return pair, nil
}

// Login verifies credentials. An unknown email and a wrong password produce
// the same error.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.TokenPair, error) {
	email := domain.NormalizeEmail(in.Email)

	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
	} else if blocked {
		s.record(domain.AuthEventLogin, 0, email, in.IP, false)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
		return nil, s.loginFailed(ctx, 0, email, in.IP)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, s.loginFailed(ctx, user.ID, email, in.IP)
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to reset login throttle")
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	s.record(domain.AuthEventLogin, user.ID, email, in.IP, true)
	return pair, nil
}

// Refresh exchanges a live refresh token for a new pair. The presented token
// is single use.
func (s *AuthService) Refresh(ctx context.Context, token, ip string) (*domain.TokenPair, error) {
	current, err := s.refresh.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			s.record(domain.AuthEventRefresh, 0, "", ip, false)
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	userID := current.UserID
	current, err = s.refresh.Verify(ctx, current)
	if err != nil {
		s.record(domain.AuthEventRefresh, userID, "", ip, false)
		return nil, err
	}

	user, err := s.users.FindByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if err := s.refresh.RevokeAll(ctx, current.UserID); err != nil {
				s.log.Warn().Err(err).Int64("user_id", current.UserID).Msg("failed to revoke refresh tokens of missing user")
			}
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	access, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("refresh: sign access token: %w", err)
	}

	next, err := s.refresh.Rotate(ctx, current)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			s.log.Warn().Int64("user_id", user.ID).Msg("refresh token already rotated")
			s.record(domain.AuthEventRefresh, user.ID, user.Email, ip, false)
		}
		return nil, err
	}

	s.log.Debug().Int64("user_id", user.ID).Msg("refresh token rotated")
	s.record(domain.AuthEventRefresh, user.ID, user.Email, ip, true)
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: next.Token,
		ExpiresIn:    s.tokens.TTL(),
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, principal domain.Principal, ip string) error {
	if err := s.refresh.RevokeAll(ctx, principal.UserID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Int64("user_id", principal.UserID).Msg("user logged out")
	s.record(domain.AuthEventLogout, principal.UserID, principal.Email, ip, true)
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.users.FindByID(ctx, principal.UserID)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	rt, err := s.refresh.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: rt.Token,
		ExpiresIn:    s.tokens.TTL(),
	}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, userID int64, email, ip string) error {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
	s.record(domain.AuthEventLogin, userID, email, ip, false)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(kind domain.AuthEventType, userID int64, email, ip string, ok bool) {
	s.audit.Enqueue(ports.AuthEventInput{
		UserID:     userID,
		Email:      email,
		Type:       kind,
		Success:    ok,
		IP:         ip,
		OccurredAt: s.now().UTC(),
	})
}
