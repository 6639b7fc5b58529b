package ports

import (
	"context"
	"time"

	"github.com/interviewme/backend/internal/core/domain"
)

// SessionRepository defines persistence operations for interview sessions.
// Mutating methods are single-document conditional updates; a zero match is
// reported as domain.ErrInvalidTransition so the caller can re-read and
// classify.
type SessionRepository interface {
	// Create inserts s and sets s.ID. Returns domain.ErrActiveSessionExists
	// when the host already owns an active session.
	Create(ctx context.Context, s *domain.Session) error
	// Delete removes a session. Used only to compensate a failed create.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	FindByCallID(ctx context.Context, callID string) (*domain.Session, error)
	FindActiveByHost(ctx context.Context, hostID string) (*domain.Session, error)

	// AssignParticipant sets participant and startedAt only when the session
	// is active, has no participant and participantID is not the host.
	AssignParticipant(ctx context.Context, id, participantID string, startedAt time.Time) (*domain.Session, error)
	// Complete moves an active session to completed, storing endedAt and the
	// derived duration (nil when the session never started).
	Complete(ctx context.Context, id string, endedAt time.Time, duration *int) (*domain.Session, error)

	ListActive(ctx context.Context, limit int) ([]*domain.Session, error)
	ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error)
}
