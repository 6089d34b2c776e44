package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThrottle(t *testing.T, max int) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, 15*time.Minute), mr
}

func TestLoginThrottle_BlocksAtLimit(t *testing.T) {
	ctx := context.Background()
	throttle, _ := newThrottle(t, 3)

	for i := range 3 {
		blocked, err := throttle.Blocked(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d", i)
		require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	}

	blocked, err := throttle.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, blocked)

	other, err := throttle.Blocked(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, other)
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newThrottle(t, 1)

	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	blocked, err := throttle.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, blocked)

	mr.FastForward(15 * time.Minute)

	blocked, err = throttle.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginThrottle_FirstFailureOpensWindow(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newThrottle(t, 5)

	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	mr.FastForward(10 * time.Minute)
	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))

	ttl := mr.TTL(throttle.key("a@x.com"))
	assert.Equal(t, 5*time.Minute, ttl, "later failures must not extend the window")
}

func TestLoginThrottle_Reset(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newThrottle(t, 1)

	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	require.NoError(t, throttle.Reset(ctx, "a@x.com"))

	blocked, err := throttle.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.False(t, mr.Exists(throttle.key("a@x.com")))
}

func TestLoginThrottle_KeyDoesNotLeakEmail(t *testing.T) {
	throttle, _ := newThrottle(t, 1)
	assert.NotContains(t, throttle.key("a@x.com"), "a@x.com")
}

// failExpire rejects standalone EXPIRE commands issued by the client.
type failExpire struct{}

func (failExpire) DialHook(next redis.DialHook) redis.DialHook { return next }

func (failExpire) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		switch cmd.Name() {
		case "expire", "pexpire":
			err := errors.New("connection reset")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (failExpire) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestLoginThrottle_WindowOpensWithoutSeparateExpire(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	client.AddHook(failExpire{})
	throttle := NewLoginThrottle(client, 1, 15*time.Minute)

	require.Error(t, client.Expire(ctx, "any", time.Minute).Err())

	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	assert.Equal(t, 15*time.Minute, mr.TTL(throttle.key("a@x.com")))

	mr.FastForward(24 * time.Hour)
	blocked, err := throttle.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginThrottle_CounterWithoutTTLGetsWindow(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newThrottle(t, 1)

	// Left behind by a write that never set a TTL.
	require.NoError(t, mr.Set(throttle.key("a@x.com"), "3"))

	require.NoError(t, throttle.RecordFailure(ctx, "a@x.com"))
	assert.Equal(t, 15*time.Minute, mr.TTL(throttle.key("a@x.com")))

	mr.FastForward(15 * time.Minute)
	blocked, err := throttle.Blocked(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}
