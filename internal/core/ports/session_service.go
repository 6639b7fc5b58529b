package ports

import (
	"context"

	"github.com/interviewme/backend/internal/core/domain"
)

// CreateSessionInput carries the host-supplied fields of a new session.
type CreateSessionInput struct {
	Problem    string
	Difficulty string
}

// SessionService owns every session state transition.
type SessionService interface {
	Create(ctx context.Context, host *domain.User, input CreateSessionInput) (*domain.Session, error)
	Join(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error)
	End(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error)
}

// UserSummary is the populated view of a session's host or participant.
type UserSummary struct {
	ID           string
	ExternalID   string
	Name         string
	Email        string
	ProfileImage string
}

// SessionView is a session with host and participant resolved.
type SessionView struct {
	Session     *domain.Session
	Host        *UserSummary
	Participant *UserSummary
}

// SessionQueryService provides read-only session projections.
type SessionQueryService interface {
	ListActive(ctx context.Context, limit int) ([]SessionView, error)
	ListRecentForUser(ctx context.Context, userID string, limit int) ([]SessionView, error)
	Get(ctx context.Context, sessionID string) (*SessionView, error)
}
