package ports

import (
	"context"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// ListJournalsFilter carries the query parameters for listing journals.
type ListJournalsFilter struct {
	OwnerID int64 // 0 = every owner
	Page    int   // 1-based
	Size    int
}

// JournalRepository defines persistence for journals. Lookups that miss return
// domain.ErrJournalNotFound.
type JournalRepository interface {
	Create(ctx context.Context, j *domain.Journal) error
	FindByID(ctx context.Context, id int64) (*domain.Journal, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Journal, error)
	// List returns one page sorted by created_at descending, plus the total count.
	List(ctx context.Context, filter ListJournalsFilter) ([]*domain.Journal, int64, error)
	// Update overwrites title, content and updated_at of the stored journal.
	Update(ctx context.Context, j *domain.Journal) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error
}
