package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{time.Millisecond, 1},
		{60 * time.Second, 1},
		{125 * time.Second, 3},
		{-125 * time.Second, 3},
		{time.Hour, 60},
	}
	for _, tc := range cases {
		if got := DurationMinutes(start, start.Add(tc.elapsed)); got != tc.want {
			t.Errorf("DurationMinutes(+%s) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestSessionStatus_Transitions(t *testing.T) {
	if !StatusActive.CanTransitionTo(StatusCompleted) || !StatusActive.CanTransitionTo(StatusCancelled) {
		t.Error("active must transition to completed and cancelled")
	}
	for _, terminal := range []SessionStatus{StatusCompleted, StatusCancelled} {
		if !terminal.Terminal() {
			t.Errorf("%s must be terminal", terminal)
		}
		if terminal.CanTransitionTo(StatusActive) {
			t.Errorf("%s must not transition back to active", terminal)
		}
	}
}

func TestSession_JoinErrorPrecedence(t *testing.T) {
	s := &Session{HostID: "h", Status: StatusCompleted, ParticipantID: "p"}
	if err := s.JoinError("h"); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("status must be checked first, got %v", err)
	}
	s.Status = StatusActive
	if err := s.JoinError("h"); !errors.Is(err, ErrHostCannotJoin) {
		t.Errorf("host must be checked before capacity, got %v", err)
	}
	if err := s.JoinError("x"); !errors.Is(err, ErrSessionFull) {
		t.Errorf("expected full, got %v", err)
	}
	s.ParticipantID = ""
	if err := s.JoinError("x"); err != nil {
		t.Errorf("expected join allowed, got %v", err)
	}
}

func TestSession_EndErrorPrecedence(t *testing.T) {
	s := &Session{HostID: "h", Status: StatusCompleted}
	if err := s.EndError("x"); !errors.Is(err, ErrNotSessionHost) {
		t.Errorf("host must be checked first, got %v", err)
	}
	if err := s.EndError("h"); !errors.Is(err, ErrSessionAlreadyCompleted) {
		t.Errorf("expected already completed, got %v", err)
	}
	s.Status = StatusCancelled
	if err := s.EndError("h"); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("expected not active for cancelled, got %v", err)
	}
}

func TestSession_RecomputeDuration(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	s := &Session{EndedAt: &end}
	s.RecomputeDuration()
	if s.Duration != nil {
		t.Error("expected no duration without startedAt")
	}

	s.StartedAt = &start
	s.RecomputeDuration()
	if s.Duration == nil || *s.Duration != 2 {
		t.Errorf("expected duration 2, got %v", s.Duration)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{NewValidationError("problem", "Problem is required"), KindValidation},
		{ErrSessionNotActive, KindValidation},
		{ErrHostCannotJoin, KindValidation},
		{ErrUnauthenticated, KindUnauthorized},
		{ErrNotSessionHost, KindForbidden},
		{ErrUserInactive, KindForbidden},
		{fmt.Errorf("get: %w", ErrSessionNotFound), KindNotFound},
		{ErrActiveSessionExists, KindConflict},
		{ErrSessionFull, KindConflict},
		{fmt.Errorf("%w: %w", ErrProvisioningFailed, ErrGateway), KindInternal},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestPublicMessage(t *testing.T) {
	if msg, ok := PublicMessage(fmt.Errorf("%w: %w", ErrTeardownFailed, ErrGateway)); !ok || msg != "failed to end session" {
		t.Errorf("unexpected message %q ok=%v", msg, ok)
	}
	if msg, ok := PublicMessage(NewValidationError("f", "m")); !ok || msg != "Validation failed" {
		t.Errorf("unexpected message %q ok=%v", msg, ok)
	}
	if _, ok := PublicMessage(errors.New("dial tcp: refused")); ok {
		t.Error("unknown errors must not be public")
	}
}
