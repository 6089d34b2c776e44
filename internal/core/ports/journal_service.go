package ports

import (
	"context"
	"time"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// JournalInput carries the mutable fields of a journal.
type JournalInput struct {
	Title   string
	Content string
}

// ListJournalsInput carries paging for the list endpoint.
type ListJournalsInput struct {
	Page int
	Size int
}

// JournalDetail is the view returned to the transport layer.
type JournalDetail struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListJournalsResult is returned by ListJournals.
type ListJournalsResult struct {
	Items      []JournalDetail
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// JournalService defines the journal use cases. Every call is scoped by the
// caller: admins see every journal, other users only their own.
type JournalService interface {
	ListJournals(ctx context.Context, caller domain.Principal, input ListJournalsInput) (*ListJournalsResult, error)
	GetJournal(ctx context.Context, caller domain.Principal, id int64) (*JournalDetail, error)
	CreateJournal(ctx context.Context, caller domain.Principal, input JournalInput) (*JournalDetail, error)
	UpdateJournal(ctx context.Context, caller domain.Principal, id int64, input JournalInput) (*JournalDetail, error)
	DeleteJournal(ctx context.Context, caller domain.Principal, id int64) error
}
