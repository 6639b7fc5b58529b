package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
)

const validSessionID = "65f1a2b3c4d5e6f7a8b9c0d1"

type stubSessionService struct {
	createFn func(ctx context.Context, host *domain.User, input ports.CreateSessionInput) (*domain.Session, error)
	joinFn   func(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error)
	endFn    func(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error)
}

func (s *stubSessionService) Create(ctx context.Context, host *domain.User, input ports.CreateSessionInput) (*domain.Session, error) {
	return s.createFn(ctx, host, input)
}

func (s *stubSessionService) Join(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error) {
	return s.joinFn(ctx, sessionID, user)
}

func (s *stubSessionService) End(ctx context.Context, sessionID string, user *domain.User) (*domain.Session, error) {
	return s.endFn(ctx, sessionID, user)
}

type stubQueryService struct {
	listActiveFn func(ctx context.Context, limit int) ([]ports.SessionView, error)
	listRecentFn func(ctx context.Context, userID string, limit int) ([]ports.SessionView, error)
	getFn        func(ctx context.Context, sessionID string) (*ports.SessionView, error)
}

func (s *stubQueryService) ListActive(ctx context.Context, limit int) ([]ports.SessionView, error) {
	return s.listActiveFn(ctx, limit)
}

func (s *stubQueryService) ListRecentForUser(ctx context.Context, userID string, limit int) ([]ports.SessionView, error) {
	return s.listRecentFn(ctx, userID, limit)
}

func (s *stubQueryService) Get(ctx context.Context, sessionID string) (*ports.SessionView, error) {
	if s.getFn == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.getFn(ctx, sessionID)
}

var testHost = &domain.User{
	ID:         "000000000000000000000001",
	ExternalID: "user_alice",
	Name:       "Alice",
	Email:      "alice@example.com",
	IsActive:   true,
}

func newTestContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserContextKey, user)
	}
	return c, rec
}

func activeSession() *domain.Session {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID:         validSessionID,
		Problem:    "Two Sum",
		Difficulty: domain.DifficultyEasy,
		Status:     domain.StatusActive,
		HostID:     testHost.ID,
		CallID:     "session_1714557600000_abc123",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var body struct {
		Status string          `json:"status"`
		Data   sessionEnvelope `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Status != "success" {
		t.Fatalf("expected success envelope, got %q", body.Status)
	}
	return body.Data.Session
}

func TestSessionHandler_Create_Success(t *testing.T) {
	svc := &stubSessionService{
		createFn: func(_ context.Context, host *domain.User, input ports.CreateSessionInput) (*domain.Session, error) {
			if host.ID != testHost.ID || input.Problem != "Two Sum" || input.Difficulty != "easy" {
				t.Fatalf("unexpected args: %s %+v", host.ID, input)
			}
			return activeSession(), nil
		},
	}
	h := NewSessionHandler(svc, &stubQueryService{})

	c, rec := newTestContext(http.MethodPost, "/sessions", `{"problem":"Two Sum","difficulty":"easy"}`, testHost)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	got := decodeSession(t, rec)
	if got.ID != validSessionID || got.Status != "active" || got.CallID == "" {
		t.Errorf("unexpected session payload: %+v", got)
	}
	if got.Host == nil || got.Host.Name != "Alice" {
		t.Errorf("expected host summary, got %+v", got.Host)
	}
}

func TestSessionHandler_Create_Validation(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{}, &stubQueryService{})

	cases := map[string]string{
		"missing problem":    `{"difficulty":"easy"}`,
		"missing difficulty": `{"problem":"Two Sum"}`,
		"bad difficulty":     `{"problem":"Two Sum","difficulty":"extreme"}`,
		"malformed":          `{"problem":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/sessions", body, testHost)
			err := h.Create(c)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSessionHandler_Create_ServiceError(t *testing.T) {
	svc := &stubSessionService{
		createFn: func(context.Context, *domain.User, ports.CreateSessionInput) (*domain.Session, error) {
			return nil, domain.ErrActiveSessionExists
		},
	}
	h := NewSessionHandler(svc, &stubQueryService{})

	c, _ := newTestContext(http.MethodPost, "/sessions", `{"problem":"Two Sum","difficulty":"easy"}`, testHost)
	if err := h.Create(c); !errors.Is(err, domain.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}
}

func TestSessionHandler_RequiresUser(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{}, &stubQueryService{})

	c, _ := newTestContext(http.MethodPost, "/sessions", `{"problem":"Two Sum","difficulty":"easy"}`, nil)
	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSessionHandler_ListActive_Limit(t *testing.T) {
	var gotLimit int
	q := &stubQueryService{
		listActiveFn: func(_ context.Context, limit int) ([]ports.SessionView, error) {
			gotLimit = limit
			return []ports.SessionView{{Session: activeSession(), Host: summaryOf(testHost)}}, nil
		},
	}
	h := NewSessionHandler(&stubSessionService{}, q)

	c, rec := newTestContext(http.MethodGet, "/sessions/active?limit=5", "", testHost)
	if err := h.ListActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotLimit != 5 {
		t.Errorf("expected limit 5, got %d", gotLimit)
	}

	var body struct {
		Data sessionsEnvelope `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Data.Sessions) != 1 || body.Data.Sessions[0].Host == nil {
		t.Errorf("unexpected sessions payload: %+v", body.Data.Sessions)
	}
}

func TestSessionHandler_ListActive_EmptyIsArray(t *testing.T) {
	q := &stubQueryService{
		listActiveFn: func(context.Context, int) ([]ports.SessionView, error) { return nil, nil },
	}
	h := NewSessionHandler(&stubSessionService{}, q)

	c, rec := newTestContext(http.MethodGet, "/sessions/active", "", testHost)
	if err := h.ListActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"sessions":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestSessionHandler_ListActive_BadLimit(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{}, &stubQueryService{})

	for _, target := range []string{"/sessions/active?limit=abc", "/sessions/active?limit=-1"} {
		c, _ := newTestContext(http.MethodGet, target, "", testHost)
		var ve *domain.ValidationError
		if err := h.ListActive(c); !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", target, err)
		}
	}
}

func TestSessionHandler_MyRecent_UsesCaller(t *testing.T) {
	var gotUser string
	q := &stubQueryService{
		listRecentFn: func(_ context.Context, userID string, _ int) ([]ports.SessionView, error) {
			gotUser = userID
			return nil, nil
		},
	}
	h := NewSessionHandler(&stubSessionService{}, q)

	c, rec := newTestContext(http.MethodGet, "/sessions/my-recent", "", testHost)
	if err := h.MyRecent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotUser != testHost.ID {
		t.Errorf("expected local user id, got %q", gotUser)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestSessionHandler_Get_MalformedID(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{}, &stubQueryService{
		getFn: func(context.Context, string) (*ports.SessionView, error) {
			t.Fatal("query must not run for a malformed id")
			return nil, nil
		},
	})

	for _, id := range []string{"abc", "zzzzzzzzzzzzzzzzzzzzzzzz", validSessionID + "0"} {
		c, _ := newTestContext(http.MethodGet, "/sessions/"+id, "", testHost)
		c.SetParamNames("id")
		c.SetParamValues(id)

		if err := h.Get(c); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("%s: expected ErrSessionNotFound, got %v", id, err)
		}
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{}, &stubQueryService{
		getFn: func(context.Context, string) (*ports.SessionView, error) {
			return nil, domain.ErrSessionNotFound
		},
	})

	c, _ := newTestContext(http.MethodGet, "/sessions/"+validSessionID, "", testHost)
	c.SetParamNames("id")
	c.SetParamValues(validSessionID)

	if err := h.Get(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionHandler_Join(t *testing.T) {
	bob := &domain.User{ID: "000000000000000000000002", ExternalID: "user_bob", Name: "Bob", IsActive: true}
	svc := &stubSessionService{
		joinFn: func(_ context.Context, id string, user *domain.User) (*domain.Session, error) {
			if id != validSessionID || user.ID != bob.ID {
				t.Fatalf("unexpected args: %s %s", id, user.ID)
			}
			s := activeSession()
			s.ParticipantID = bob.ID
			return s, nil
		},
	}
	h := NewSessionHandler(svc, &stubQueryService{})

	c, rec := newTestContext(http.MethodPost, "/sessions/"+validSessionID+"/join", "", bob)
	c.SetParamNames("id")
	c.SetParamValues(validSessionID)

	if err := h.Join(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := decodeSession(t, rec)
	if got.ParticipantID != bob.ID || got.Participant == nil || got.Participant.Name != "Bob" {
		t.Errorf("unexpected participant: %+v", got)
	}
}

func TestSessionHandler_End(t *testing.T) {
	svc := &stubSessionService{
		endFn: func(_ context.Context, _ string, _ *domain.User) (*domain.Session, error) {
			s := activeSession()
			end := s.CreatedAt.Add(2 * time.Minute)
			dur := 2
			s.Status = domain.StatusCompleted
			s.EndedAt = &end
			s.Duration = &dur
			return s, nil
		},
	}
	h := NewSessionHandler(svc, &stubQueryService{})

	c, rec := newTestContext(http.MethodPost, "/sessions/"+validSessionID+"/end", "", testHost)
	c.SetParamNames("id")
	c.SetParamValues(validSessionID)

	if err := h.End(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := decodeSession(t, rec)
	if got.Status != "completed" || got.EndedAt == nil || got.Duration == nil || *got.Duration != 2 {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestSessionHandler_End_NotHost(t *testing.T) {
	svc := &stubSessionService{
		endFn: func(context.Context, string, *domain.User) (*domain.Session, error) {
			return nil, domain.ErrNotSessionHost
		},
	}
	h := NewSessionHandler(svc, &stubQueryService{})

	c, _ := newTestContext(http.MethodPost, "/sessions/"+validSessionID+"/end", "", testHost)
	c.SetParamNames("id")
	c.SetParamValues(validSessionID)

	if err := h.End(c); !errors.Is(err, domain.ErrNotSessionHost) {
		t.Fatalf("expected ErrNotSessionHost, got %v", err)
	}
}

func TestSessionHandler_Join_ReturnsPopulatedView(t *testing.T) {
	bob := &domain.User{ID: "000000000000000000000002", ExternalID: "user_bob", Name: "Bob", IsActive: true}
	joined := activeSession()
	joined.ParticipantID = bob.ID

	svc := &stubSessionService{
		joinFn: func(context.Context, string, *domain.User) (*domain.Session, error) { return joined, nil },
	}
	q := &stubQueryService{
		getFn: func(_ context.Context, id string) (*ports.SessionView, error) {
			return &ports.SessionView{Session: joined, Host: summaryOf(testHost), Participant: summaryOf(bob)}, nil
		},
	}
	h := NewSessionHandler(svc, q)

	c, rec := newTestContext(http.MethodPost, "/sessions/"+validSessionID+"/join", "", bob)
	c.SetParamNames("id")
	c.SetParamValues(validSessionID)

	if err := h.Join(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	got := decodeSession(t, rec)
	if got.Host == nil || got.Host.Name != "Alice" || got.Participant == nil || got.Participant.Name != "Bob" {
		t.Errorf("expected host and participant populated, got %+v", got)
	}
}
