package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &domain.User{Email: "alice@example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	err := repo.Create(ctx, &domain.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	got.Role = domain.RoleAdmin

	again, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, again.Role, "callers must not mutate stored rows")
}

func TestJournalRepository_ListOrdersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository()

	for i := range 5 {
		owner := int64(1)
		if i%2 == 1 {
			owner = 2
		}
		ts := t0.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, &domain.Journal{OwnerID: owner, Title: "j", CreatedAt: ts, UpdatedAt: ts}))
	}
	// same timestamp as id 5; the higher id sorts first
	ts := t0.Add(4 * time.Minute)
	require.NoError(t, repo.Create(ctx, &domain.Journal{OwnerID: 1, Title: "tie", CreatedAt: ts, UpdatedAt: ts}))

	items, total, err := repo.List(ctx, ports.ListJournalsFilter{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{6, 5, 4}, []int64{items[0].ID, items[1].ID, items[2].ID})

	items, _, err = repo.List(ctx, ports.ListJournalsFilter{Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, []int64{items[0].ID, items[1].ID, items[2].ID})

	items, total, err = repo.List(ctx, ports.ListJournalsFilter{OwnerID: 2, Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, j := range items {
		assert.Equal(t, int64(2), j.OwnerID)
	}

	items, total, err = repo.List(ctx, ports.ListJournalsFilter{Page: 9, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Empty(t, items)
}

func TestJournalRepository_OwnerScopedAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository()
	j := &domain.Journal{OwnerID: 1, Title: "mine", CreatedAt: t0}
	require.NoError(t, repo.Create(ctx, j))

	_, err := repo.FindByIDAndOwner(ctx, j.ID, 2)
	assert.ErrorIs(t, err, domain.ErrJournalNotFound)
	assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, j.ID, 2), domain.ErrJournalNotFound)

	require.NoError(t, repo.DeleteByIDAndOwner(ctx, j.ID, 1))
	assert.ErrorIs(t, repo.DeleteByID(ctx, j.ID), domain.ErrJournalNotFound)
}

func TestRefreshTokenRepository_RotateIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository()

	require.NoError(t, repo.Replace(ctx, &domain.RefreshToken{Token: "a", UserID: 1, ExpiresAt: t0}))
	require.NoError(t, repo.Rotate(ctx, "a", &domain.RefreshToken{Token: "b", UserID: 1, ExpiresAt: t0}))

	err := repo.Rotate(ctx, "a", &domain.RefreshToken{Token: "c", UserID: 1, ExpiresAt: t0})
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)

	_, err = repo.FindByToken(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
	got, err := repo.FindByToken(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)

	require.NoError(t, repo.DeleteByUser(ctx, 1))
	_, err = repo.FindByToken(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestLoginThrottle_FixedWindow(t *testing.T) {
	ctx := context.Background()
	now := t0
	throttle := NewLoginThrottle(2, time.Minute)
	throttle.now = func() time.Time { return now }

	require.NoError(t, throttle.RecordFailure(ctx, "a@example.com"))
	blocked, _ := throttle.Blocked(ctx, "a@example.com")
	assert.False(t, blocked)

	require.NoError(t, throttle.RecordFailure(ctx, "a@example.com"))
	blocked, _ = throttle.Blocked(ctx, "a@example.com")
	assert.True(t, blocked)

	other, _ := throttle.Blocked(ctx, "b@example.com")
	assert.False(t, other)

	now = now.Add(time.Minute)
	blocked, _ = throttle.Blocked(ctx, "a@example.com")
	assert.False(t, blocked, "window lapses at its boundary")

	require.NoError(t, throttle.RecordFailure(ctx, "a@example.com"))
	require.NoError(t, throttle.RecordFailure(ctx, "a@example.com"))
	require.NoError(t, throttle.Reset(ctx, "a@example.com"))
	blocked, _ = throttle.Blocked(ctx, "a@example.com")
	assert.False(t, blocked)
}
