package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type sessionQueryService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewSessionQueryService returns a SessionQueryService implementation.
func NewSessionQueryService(sessions ports.SessionRepository, users ports.UserRepository, log zerolog.Logger) ports.SessionQueryService {
	return &sessionQueryService{sessions: sessions, users: users, log: log}
}

// ListActive returns active sessions, newest first.
func (s *sessionQueryService) ListActive(ctx context.Context, limit int) ([]ports.SessionView, error) {
	sessions, err := s.sessions.ListActive(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	return s.populate(ctx, sessions)
}

// ListRecentForUser returns completed sessions where userID was host or
// participant, newest first.
func (s *sessionQueryService) ListRecentForUser(ctx context.Context, userID string, limit int) ([]ports.SessionView, error) {
	sessions, err := s.sessions.ListCompletedByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent sessions: %w", err)
	}
	return s.populate(ctx, sessions)
}

func (s *sessionQueryService) Get(ctx context.Context, sessionID string) (*ports.SessionView, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	views, err := s.populate(ctx, []*domain.Session{session})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// populate resolves host and participant summaries with a single batched
// user lookup. Users deleted since the session was created resolve to nil.
func (s *sessionQueryService) populate(ctx context.Context, sessions []*domain.Session) ([]ports.SessionView, error) {
	views := make([]ports.SessionView, 0, len(sessions))
	if len(sessions) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(sessions)*2)
	ids := make([]string, 0, len(sessions)*2)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, sess := range sessions {
		add(sess.HostID)
		add(sess.ParticipantID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate sessions: %w", err)
	}

	for _, sess := range sessions {
		views = append(views, ports.SessionView{
			Session:     sess,
			Host:        summarize(users[sess.HostID]),
			Participant: summarize(users[sess.ParticipantID]),
		})
	}
	return views, nil
}

func summarize(u *domain.User) *ports.UserSummary {
	if u == nil {
		return nil
	}
	return &ports.UserSummary{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
