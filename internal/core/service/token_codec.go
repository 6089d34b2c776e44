package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// DefaultAccessTokenTTL is the lifetime of an access token.
const DefaultAccessTokenTTL = 15 * time.Minute

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and validates HS256 access tokens with a key supplied at
// construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenCodec{secret: key, ttl: ttl, now: time.Now}
}

func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue returns a signed token carrying sub, email, role, iat and exp.
func (c *TokenCodec) Issue(user *domain.User) (string, error) {
	now := c.now().UTC()
	claims := accessClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate checks signature, algorithm and expiry. A token is expired from the
// instant now reaches exp. Every failure collapses into ErrInvalidAccessToken.
func (c *TokenCodec) Validate(token string) (*domain.AccessClaims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidAccessToken
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, domain.ErrInvalidAccessToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, domain.ErrInvalidAccessToken
	}
	if claims.Role == "" || claims.Email == "" {
		return nil, domain.ErrInvalidAccessToken
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}

	out := &domain.AccessClaims{
		UserID:    userID,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
