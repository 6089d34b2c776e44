package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single authentication event.
func (s *auditService) Record(ctx context.Context, in ports.AuthEventInput) error {
	ts := in.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuthEvent{
		UserID:     in.UserID,
		Email:      in.Email,
		Type:       in.Type,
		Success:    in.Success,
		IP:         in.IP,
		OccurredAt: ts,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("type", string(in.Type)).
		Int64("user_id", in.UserID).
		Bool("success", in.Success).
		Msg("auth event recorded")
	return nil
}
