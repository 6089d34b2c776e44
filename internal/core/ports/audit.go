package ports

import (
	"context"
	"time"

	"github.com/99minutos/journal-system/internal/core/domain"
)

// AuthEventInput is handed from the session flows to the audit trail.
type AuthEventInput struct {
	UserID     int64
	Email      string
	Type       domain.AuthEventType
	Success    bool
	IP         string
	OccurredAt time.Time
}

// AuditRepository persists authentication events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService records a single authentication event.
type AuditService interface {
	Record(ctx context.Context, event AuthEventInput) error
}

// AuditSink accepts events without blocking the caller.
type AuditSink interface {
	Enqueue(event AuthEventInput)
}
