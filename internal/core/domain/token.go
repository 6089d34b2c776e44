package domain

import "time"

// RefreshToken is the persisted, rotating session secret. A user holds at
// most one at any time.
type RefreshToken struct {
	Token     string    `bson:"token"`
	UserID    int64     `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Expired reports whether the token is no longer usable at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// AccessClaims is the identity carried inside a signed access token.
type AccessClaims struct {
	UserID    int64
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is returned by every successful authentication flow.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}
