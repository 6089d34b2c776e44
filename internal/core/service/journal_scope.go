package service

import (
	"context"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

// journalScope is the slice of the journal collection a caller may act on.
// It is chosen once per call by scopeFor and never re-evaluated.
type journalScope interface {
	name() string
	list(ctx context.Context, page, size int) ([]*domain.Journal, int64, error)
	find(ctx context.Context, id int64) (*domain.Journal, error)
	remove(ctx context.Context, id int64) error
}

func scopeFor(caller domain.Principal, repo ports.JournalRepository) journalScope {
	if caller.IsAdmin() {
		return adminScope{repo: repo}
	}
	return ownerScope{repo: repo, ownerID: caller.UserID}
}

// adminScope covers every journal.
type adminScope struct {
	repo ports.JournalRepository
}

func (adminScope) name() string { return "admin" }

func (s adminScope) list(ctx context.Context, page, size int) ([]*domain.Journal, int64, error) {
	return s.repo.List(ctx, ports.ListJournalsFilter{Page: page, Size: size})
}

func (s adminScope) find(ctx context.Context, id int64) (*domain.Journal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s adminScope) remove(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

// ownerScope covers only the caller's journals. Journals of other owners are
// indistinguishable from missing ones.
type ownerScope struct {
	repo    ports.JournalRepository
	ownerID int64
}

func (ownerScope) name() string { return "owner" }

func (s ownerScope) list(ctx context.Context, page, size int) ([]*domain.Journal, int64, error) {
	return s.repo.List(ctx, ports.ListJournalsFilter{OwnerID: s.ownerID, Page: page, Size: size})
}

func (s ownerScope) find(ctx context.Context, id int64) (*domain.Journal, error) {
	return s.repo.FindByIDAndOwner(ctx, id, s.ownerID)
}

func (s ownerScope) remove(ctx context.Context, id int64) error {
	return s.repo.DeleteByIDAndOwner(ctx, id, s.ownerID)
}
