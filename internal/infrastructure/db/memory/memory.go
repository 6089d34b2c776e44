// Package memory holds in-process implementations of the repository ports.
// They back STORE_BACKEND=memory and the router tests, and give the same
// atomicity guarantees as the MongoDB repositories by holding a mutex for the
// duration of each operation.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	seq     int64
	byID    map[int64]*domain.User
	byEmail map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[int64]*domain.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailInUse
	}
	r.seq++
	user.ID = r.seq
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// Delete removes a user. Only used to simulate accounts vanishing under a live token.
func (r *UserRepository) Delete(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

// JournalRepository implements ports.JournalRepository.
type JournalRepository struct {
	mu   sync.RWMutex
	seq  int64
	rows map[int64]*domain.Journal
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{rows: make(map[int64]*domain.Journal)}
}

func (r *JournalRepository) Create(_ context.Context, j *domain.Journal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	j.ID = r.seq
	clone := *j
	r.rows[j.ID] = &clone
	return nil
}

func (r *JournalRepository) FindByID(_ context.Context, id int64) (*domain.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrJournalNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *JournalRepository) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*domain.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.rows[id]
	if !ok || j.OwnerID != ownerID {
		return nil, domain.ErrJournalNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *JournalRepository) List(_ context.Context, filter ports.ListJournalsFilter) ([]*domain.Journal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Journal, 0, len(r.rows))
	for _, j := range r.rows {
		if filter.OwnerID != 0 && j.OwnerID != filter.OwnerID {
			continue
		}
		clone := *j
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(a, b int) bool {
		if matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].ID > matched[b].ID
		}
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Size
	if start >= len(matched) || start < 0 {
		return []*domain.Journal{}, total, nil
	}
	end := min(start+filter.Size, len(matched))
	return matched[start:end], total, nil
}

func (r *JournalRepository) Update(_ context.Context, j *domain.Journal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rows[j.ID]
	if !ok {
		return domain.ErrJournalNotFound
	}
	stored.Title = j.Title
	stored.Content = j.Content
	stored.UpdatedAt = j.UpdatedAt
	return nil
}

func (r *JournalRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrJournalNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *JournalRepository) DeleteByIDAndOwner(_ context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.rows[id]
	if !ok || j.OwnerID != ownerID {
		return domain.ErrJournalNotFound
	}
	delete(r.rows, id)
	return nil
}

// RefreshTokenRepository implements ports.RefreshTokenRepository, keyed by user.
type RefreshTokenRepository struct {
	mu      sync.Mutex
	byUser  map[int64]*domain.RefreshToken
	byToken map[string]int64
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{
		byUser:  make(map[int64]*domain.RefreshToken),
		byToken: make(map[string]int64),
	}
}

func (r *RefreshTokenRepository) Replace(_ context.Context, t *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(t)
	return nil
}

func (r *RefreshTokenRepository) Rotate(_ context.Context, oldToken string, next *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byUser[next.UserID]
	if !ok || cur.Token != oldToken {
		return domain.ErrRefreshTokenNotFound
	}
	r.put(next)
	return nil
}

func (r *RefreshTokenRepository) FindByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrRefreshTokenNotFound
	}
	clone := *r.byUser[userID]
	return &clone, nil
}

func (r *RefreshTokenRepository) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID, ok := r.byToken[token]; ok {
		delete(r.byToken, token)
		delete(r.byUser, userID)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.byUser[userID]; ok {
		delete(r.byToken, cur.Token)
		delete(r.byUser, userID)
	}
	return nil
}

// put must be called with mu held.
func (r *RefreshTokenRepository) put(t *domain.RefreshToken) {
	if cur, ok := r.byUser[t.UserID]; ok {
		delete(r.byToken, cur.Token)
	}
	clone := *t
	r.byUser[t.UserID] = &clone
	r.byToken[t.Token] = t.UserID
}

// AuditRepository keeps auth events in a slice.
type AuditRepository struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, *event)
	return nil
}

// Events returns a snapshot of everything recorded so far.
func (r *AuditRepository) Events() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}
