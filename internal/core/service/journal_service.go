package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = 100_000
)

type JournalService struct {
	repo   ports.JournalRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewJournalService(repo ports.JournalRepository, logger zerolog.Logger) *JournalService {
	return &JournalService{
		repo:   repo,
		logger: logger.With().Str("component", "journal").Logger(),
		now:    time.Now,
	}
}

// ListJournals returns the caller's journals, or every journal for an admin,
// newest first.
func (s *JournalService) ListJournals(ctx context.Context, caller domain.Principal, input ports.ListJournalsInput) (*ports.ListJournalsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	// Keeps the skip offset well inside int64; nothing lives this deep.
	if page > maxPage {
		page = maxPage
	}
	size := input.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := scopeFor(caller, s.repo).list(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}

	out := &ports.ListJournalsResult{
		Items:      make([]ports.JournalDetail, 0, len(items)),
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
	}
	for _, j := range items {
		out.Items = append(out.Items, toDetail(j))
	}
	return out, nil
}

func (s *JournalService) GetJournal(ctx context.Context, caller domain.Principal, id int64) (*ports.JournalDetail, error) {
	j, err := scopeFor(caller, s.repo).find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := toDetail(j)
	return &d, nil
}

// CreateJournal always assigns the caller as owner.
func (s *JournalService) CreateJournal(ctx context.Context, caller domain.Principal, input ports.JournalInput) (*ports.JournalDetail, error) {
	now := s.now().UTC().Truncate(time.Millisecond)
	j := &domain.Journal{
		OwnerID:   caller.UserID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", caller.UserID).Msg("failed to create journal")
		return nil, fmt.Errorf("create journal: %w", err)
	}

	s.logger.Info().Int64("journal_id", j.ID).Int64("owner_id", j.OwnerID).Msg("journal created")
	d := toDetail(j)
	return &d, nil
}

// UpdateJournal overwrites title and content and bumps updated_at.
func (s *JournalService) UpdateJournal(ctx context.Context, caller domain.Principal, id int64, input ports.JournalInput) (*ports.JournalDetail, error) {
	j, err := scopeFor(caller, s.repo).find(ctx, id)
	if err != nil {
		return nil, err
	}

	j.Title = input.Title
	j.Content = input.Content
	j.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	if err := s.repo.Update(ctx, j); err != nil {
		return nil, fmt.Errorf("update journal: %w", err)
	}

	s.logger.Info().Int64("journal_id", j.ID).Int64("caller_id", caller.UserID).Msg("journal updated")
	d := toDetail(j)
	return &d, nil
}

// DeleteJournal takes exactly one deletion path, picked by the caller's scope.
func (s *JournalService) DeleteJournal(ctx context.Context, caller domain.Principal, id int64) error {
	scope := scopeFor(caller, s.repo)
	if err := scope.remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("journal_id", id).Int64("caller_id", caller.UserID).Str("scope", scope.name()).Msg("journal deleted")
	return nil
}

func toDetail(j *domain.Journal) ports.JournalDetail {
	return ports.JournalDetail{
		ID:        j.ID,
		OwnerID:   j.OwnerID,
		Title:     j.Title,
		Content:   j.Content,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
