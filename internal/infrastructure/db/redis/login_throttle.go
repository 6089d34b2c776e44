package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins in Redis using a fixed window.
// Key format: login_failures:<sha256(key)>
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxFailures: maxFailures, window: window}
}

// Blocked reports whether key has reached the failure limit in the current window.
func (t *LoginThrottle) Blocked(ctx context.Context, key string) (bool, error) {
	if t.maxFailures <= 0 {
		return false, nil
	}
	n, err := t.client.Get(ctx, t.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// recordFailureScript increments the counter and opens the window in one step.
// A counter found without a TTL gets one too, so a key can never outlive its
// window.
var recordFailureScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RecordFailure increments the counter. The first failure opens the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	err := recordFailureScript.Run(ctx, t.client, []string{t.key(key)}, t.window.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("login throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

// key hashes the email so addresses never appear in Redis.
func (t *LoginThrottle) key(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "login_failures:" + hex.EncodeToString(sum[:])
}
