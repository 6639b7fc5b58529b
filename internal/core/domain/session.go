package domain

import (
	"errors"
	"math"
	"time"
)

// SessionStatus represents the lifecycle state of an interview session.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// Difficulty is the declared difficulty of the session's problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	ProblemMinLength = 10
	ProblemMaxLength = 500
)

// validTransitions defines the allowed state machine transitions.
// Completed and cancelled are terminal.
var validTransitions = map[SessionStatus][]SessionStatus{
	StatusActive: {StatusCompleted, StatusCancelled},
}

var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrActiveSessionExists     = errors.New("you already have an active session")
	ErrSessionNotActive        = errors.New("session not active")
	ErrHostCannotJoin          = errors.New("host cannot join own session")
	ErrSessionFull             = errors.New("session already full")
	ErrNotSessionHost          = errors.New("only host can end session")
	ErrSessionAlreadyCompleted = errors.New("session already completed")
	ErrInvalidTransition       = errors.New("invalid status transition")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s SessionStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Session is one practice-interview engagement between a host and at most
// one participant. CallID keys both the remote call and the remote channel
// and never changes after creation.
type Session struct {
	ID            string        `json:"id"`
	Problem       string        `json:"problem"`
	Difficulty    Difficulty    `json:"difficulty"`
	HostID        string        `json:"hostId"`
	ParticipantID string        `json:"participantId,omitempty"`
	Status        SessionStatus `json:"status"`
	CallID        string        `json:"callId"`
	StartedAt     *time.Time    `json:"startedAt,omitempty"`
	EndedAt       *time.Time    `json:"endedAt,omitempty"`
	Duration      *int          `json:"duration,omitempty"`
	Feedback      string        `json:"feedback"`
	Rating        *int          `json:"rating,omitempty"`
	CancelledBy   string        `json:"cancelledBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// HasParticipant reports whether the participant slot is taken.
func (s *Session) HasParticipant() bool {
	return s.ParticipantID != ""
}

// IsHost reports whether userID created the session.
func (s *Session) IsHost(userID string) bool {
	return s.HostID == userID
}

// JoinError returns the reason userID may not join s, or nil.
// Checks run in a fixed order: status, host, participant slot.
func (s *Session) JoinError(userID string) error {
	switch {
	case s.Status != StatusActive:
		return ErrSessionNotActive
	case s.IsHost(userID):
		return ErrHostCannotJoin
	case s.HasParticipant():
		return ErrSessionFull
	}
	return nil
}

// EndError returns the reason userID may not end s, or nil.
func (s *Session) EndError(userID string) error {
	switch {
	case !s.IsHost(userID):
		return ErrNotSessionHost
	case s.Status == StatusCompleted:
		return ErrSessionAlreadyCompleted
	case !s.Status.CanTransitionTo(StatusCompleted):
		return ErrSessionNotActive
	}
	return nil
}

// RecomputeDuration refreshes Duration from StartedAt and EndedAt. It is
// called whenever either timestamp changes.
func (s *Session) RecomputeDuration() {
	if s.StartedAt == nil || s.EndedAt == nil {
		return
	}
	d := DurationMinutes(*s.StartedAt, *s.EndedAt)
	s.Duration = &d
}

// DurationMinutes returns ceil(|end - start| / 1 minute), working in
// milliseconds.
func DurationMinutes(start, end time.Time) int {
	diff := end.Sub(start).Milliseconds()
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / 60000))
}
