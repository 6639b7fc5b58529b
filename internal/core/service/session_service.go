package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
	"github.com/interviewme/backend/internal/infrastructure/metrics"
)

const (
	callType    = "default"
	channelType = "messaging"

	defaultGatewayTimeout = 10 * time.Second
	callIDSuffixLen       = 6
	callIDAlphabet        = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// SessionService implements the session lifecycle: create, join and end.
// It keeps the session record and the remote call/channel consistent.
type SessionService struct {
	repo           ports.SessionRepository
	gateway        ports.CommunicationGateway
	gatewayTimeout time.Duration
	logger         zerolog.Logger
	now            func() time.Time
}

func NewSessionService(repo ports.SessionRepository, gateway ports.CommunicationGateway, gatewayTimeout time.Duration, logger zerolog.Logger) *SessionService {
	if gatewayTimeout <= 0 {
		gatewayTimeout = defaultGatewayTimeout
	}
	return &SessionService{
		repo:           repo,
		gateway:        gateway,
		gatewayTimeout: gatewayTimeout,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a new active session for host and provisions its call and
// chat channel. If provisioning fails the session record is removed again.
func (s *SessionService) Create(ctx context.Context, host *domain.User, input ports.CreateSessionInput) (*domain.Session, error) {
	problem, difficulty, err := validateCreateInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindActiveByHost(ctx, host.ID)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrActiveSessionExists
	case err != nil && !errors.Is(err, domain.ErrSessionNotFound):
		return nil, fmt.Errorf("create session: lookup active: %w", err)
	}

	now := s.now()
	session := &domain.Session{
		Problem:    problem,
		Difficulty: difficulty,
		HostID:     host.ID,
		Status:     domain.StatusActive,
		CallID:     generateCallID(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		if errors.Is(err, domain.ErrActiveSessionExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.provision(ctx, host, session); err != nil {
		metrics.SessionProvisioningFailuresTotal.Inc()
		s.logger.Error().Err(err).
			Str("session_id", session.ID).
			Str("call_id", session.CallID).
			Msg("session provisioning failed, rolling back")

		s.rollback(ctx, session)
		return nil, fmt.Errorf("%w: %w", domain.ErrProvisioningFailed, err)
	}

	metrics.SessionsCreatedTotal.WithLabelValues(string(difficulty)).Inc()
	s.logger.Info().
		Str("session_id", session.ID).
		Str("call_id", session.CallID).
		Str("host_id", host.ID).
		Msg("session created")

	return session, nil
}

// provision creates the remote call and channel for session. A call created
// before a channel failure is torn down again on a best-effort basis.
func (s *SessionService) provision(ctx context.Context, host *domain.User, session *domain.Session) error {
	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	call, err := s.gateway.CreateCall(gctx, ports.CallSpec{
		Type:      callType,
		ID:        session.CallID,
		CreatedBy: host.ExternalID,
		Custom: map[string]any{
			"problem":    session.Problem,
			"difficulty": string(session.Difficulty),
			"sessionId":  session.ID,
		},
	})
	if err != nil {
		return fmt.Errorf("create call: %w", err)
	}

	_, err = s.gateway.CreateChannel(gctx, ports.ChannelSpec{
		Type:      channelType,
		ID:        session.CallID,
		Name:      session.Problem + " Session",
		CreatedBy: host.ExternalID,
		Members:   []string{host.ExternalID},
	})
	if err != nil {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.WithoutCancel(ctx), s.gatewayTimeout)
		defer cleanupCancel()
		if delErr := s.gateway.DeleteCall(cleanupCtx, call, true); delErr != nil {
			s.logger.Warn().Err(delErr).Str("call_id", session.CallID).Msg("failed to delete orphaned call")
		}
		return fmt.Errorf("create channel: %w", err)
	}

	return nil
}

// rollback deletes the session record of a failed create. It runs detached
// from request cancellation so an aborted client cannot leave an orphan.
func (s *SessionService) rollback(ctx context.Context, session *domain.Session) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.gatewayTimeout)
	defer cancel()

	if err := s.repo.Delete(rctx, session.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.logger.Error().Err(err).
			Str("session_id", session.ID).
			Str("call_id", session.CallID).
			Msg("session rollback failed")
	}
}

// Join assigns user as the participant of an active session and adds them
// to the session channel. A channel failure is reported but the participant
// assignment is kept.
func (s *SessionService) Join(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.JoinError(user.ID); err != nil {
		return nil, err
	}

	updated, err := s.repo.AssignParticipant(ctx, sessionID, user.ID, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			// Lost a race with a concurrent join or end.
			return nil, s.classify(ctx, sessionID, func(cur *domain.Session) error {
				if jerr := cur.JoinError(user.ID); jerr != nil {
					return jerr
				}
				return domain.ErrSessionFull
			})
		}
		return nil, fmt.Errorf("join session: %w", err)
	}

	metrics.SessionsJoinedTotal.Inc()

	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	channel := ports.ChannelRef{Type: channelType, ID: updated.CallID}
	if err := s.gateway.AddMember(gctx, channel, user.ExternalID); err != nil {
		s.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("user_id", user.ID).
			Msg("failed to add participant to session channel")
		return nil, fmt.Errorf("%w: %w", domain.ErrMemberSyncFailed, err)
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("participant_id", user.ID).
		Msg("session joined")

	return updated, nil
}

// End tears down the remote call and channel, then marks the session
// completed. The session stays active when teardown fails.
func (s *SessionService) End(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.EndError(user.ID); err != nil {
		return nil, err
	}

	if err := s.teardown(ctx, session); err != nil {
		metrics.SessionTeardownFailuresTotal.Inc()
		s.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("call_id", session.CallID).
			Msg("failed to properly end session")
		return nil, fmt.Errorf("%w: %w", domain.ErrTeardownFailed, err)
	}

	endedAt := s.now()
	session.EndedAt = &endedAt
	session.RecomputeDuration()

	updated, err := s.repo.Complete(ctx, sessionID, endedAt, session.Duration)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, s.classify(ctx, sessionID, func(cur *domain.Session) error {
				if eerr := cur.EndError(user.ID); eerr != nil {
					return eerr
				}
				return domain.ErrSessionNotActive
			})
		}
		return nil, fmt.Errorf("end session: %w", err)
	}

	metrics.SessionsEndedTotal.Inc()
	if updated.Duration != nil {
		metrics.SessionDurationMinutes.Observe(float64(*updated.Duration))
	}
	s.logger.Info().
		Str("session_id", sessionID).
		Str("call_id", updated.CallID).
		Msg("session ended")

	return updated, nil
}

func (s *SessionService) teardown(ctx context.Context, session *domain.Session) error {
	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	if err := s.gateway.DeleteCall(gctx, ports.CallRef{Type: callType, ID: session.CallID}, true); err != nil {
		return fmt.Errorf("delete call: %w", err)
	}
	if err := s.gateway.DeleteChannel(gctx, ports.ChannelRef{Type: channelType, ID: session.CallID}); err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

// classify re-reads a session after a conditional update matched nothing and
// explains why.
func (s *SessionService) classify(ctx context.Context, sessionID string, reason func(*domain.Session) error) error {
	cur, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	return reason(cur)
}

func validateCreateInput(in ports.CreateSessionInput) (string, domain.Difficulty, error) {
	var fields []domain.FieldError

	problem := cleanText(in.Problem)
	switch n := utf8.RuneCountInString(problem); {
	case n == 0:
		fields = append(fields, domain.FieldError{Field: "problem", Message: "Problem is required"})
	case n < domain.ProblemMinLength:
		fields = append(fields, domain.FieldError{Field: "problem", Message: fmt.Sprintf("Problem must be at least %d characters", domain.ProblemMinLength)})
	case n > domain.ProblemMaxLength:
		fields = append(fields, domain.FieldError{Field: "problem", Message: "Problem too long"})
	}

	difficulty := domain.Difficulty(strings.TrimSpace(in.Difficulty))
	if !difficulty.Valid() {
		fields = append(fields, domain.FieldError{Field: "difficulty", Message: "Difficulty must be one of: easy, medium, hard"})
	}

	if len(fields) > 0 {
		return "", "", &domain.ValidationError{Fields: fields}
	}
	return problem, difficulty, nil
}

// generateCallID returns a unique identifier in the format
// session_<epoch-ms>_<random-suffix>.
func generateCallID(now time.Time) string {
	var b strings.Builder
	limit := big.NewInt(int64(len(callIDAlphabet)))
	for i := 0; i < callIDSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// fallback: use current nanoseconds
			return fmt.Sprintf("session_%d_%x", now.UnixMilli(), time.Now().UnixNano()&0xFFFFFF)
		}
		b.WriteByte(callIDAlphabet[n.Int64()])
	}
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), b.String())
}
