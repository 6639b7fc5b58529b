package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stores with the same conditional semantics as the Mongo ones.
// ---------------------------------------------------------------------------

type memoryUsers struct {
	mu         sync.Mutex
	byExternal map[string]*domain.User
	seq        int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byExternal: make(map[string]*domain.User)}
}

func (r *memoryUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExternal[u.ExternalID]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("%024x", 0xa000+r.seq)
	r.byExternal[u.ExternalID] = &clone
	out := clone
	return &out, nil
}

func (r *memoryUsers) FindByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byExternal[externalID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memoryUsers) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User, len(ids))
	for _, u := range r.byExternal {
		for _, id := range ids {
			if u.ID == id {
				clone := *u
				out[id] = &clone
			}
		}
	}
	return out, nil
}

func (r *memoryUsers) DeleteByExternalID(_ context.Context, externalID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExternal[externalID]; !ok {
		return false, nil
	}
	delete(r.byExternal, externalID)
	return true, nil
}

func (r *memoryUsers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byExternal)
}

type memorySessions struct {
	mu   sync.Mutex
	byID map[string]*domain.Session
	seq  int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{byID: make(map[string]*domain.Session)}
}

func (r *memorySessions) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if cur.HostID == s.HostID && cur.Status == domain.StatusActive {
			return domain.ErrActiveSessionExists
		}
	}
	r.seq++
	s.ID = fmt.Sprintf("%024x", 0xb000+r.seq)
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *memorySessions) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memorySessions) find(match func(*domain.Session) bool) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if match(s) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *memorySessions) FindByID(_ context.Context, id string) (*domain.Session, error) {
	return r.find(func(s *domain.Session) bool { return s.ID == id })
}

func (r *memorySessions) FindByCallID(_ context.Context, callID string) (*domain.Session, error) {
	return r.find(func(s *domain.Session) bool { return s.CallID == callID })
}

func (r *memorySessions) FindActiveByHost(_ context.Context, hostID string) (*domain.Session, error) {
	return r.find(func(s *domain.Session) bool { return s.HostID == hostID && s.Status == domain.StatusActive })
}

func (r *memorySessions) AssignParticipant(_ context.Context, id, participantID string, startedAt time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.Status != domain.StatusActive || s.ParticipantID != "" || s.HostID == participantID {
		return nil, domain.ErrInvalidTransition
	}
	s.ParticipantID = participantID
	s.StartedAt = &startedAt
	s.UpdatedAt = startedAt
	clone := *s
	return &clone, nil
}

func (r *memorySessions) Complete(_ context.Context, id string, endedAt time.Time, duration *int) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.Status != domain.StatusActive {
		return nil, domain.ErrInvalidTransition
	}
	s.Status = domain.StatusCompleted
	s.EndedAt = &endedAt
	s.Duration = duration
	s.UpdatedAt = endedAt
	clone := *s
	return &clone, nil
}

func (r *memorySessions) list(match func(*domain.Session) bool, limit int) []*domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Session
	for _, s := range r.byID {
		if match(s) {
			clone := *s
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *memorySessions) ListActive(_ context.Context, limit int) ([]*domain.Session, error) {
	return r.list(func(s *domain.Session) bool { return s.Status == domain.StatusActive }, limit), nil
}

func (r *memorySessions) ListCompletedByUser(_ context.Context, userID string, limit int) ([]*domain.Session, error) {
	return r.list(func(s *domain.Session) bool {
		return s.Status == domain.StatusCompleted && (s.HostID == userID || s.ParticipantID == userID)
	}, limit), nil
}

type memoryDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (d *memoryDedup) IsDuplicate(_ context.Context, deliveryID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[deliveryID], nil
}

func (d *memoryDedup) Mark(_ context.Context, deliveryID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[deliveryID] = true
	return nil
}

// fakeGateway accepts every provider call unless failCreateCall is set.
type fakeGateway struct {
	mu             sync.Mutex
	failCreateCall bool
	calls          map[string]bool
}

func (g *fakeGateway) UpsertIdentity(context.Context, ports.Identity) error { return nil }
func (g *fakeGateway) DeleteIdentity(context.Context, string) error         { return nil }

func (g *fakeGateway) CreateCall(_ context.Context, spec ports.CallSpec) (ports.CallRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreateCall {
		return ports.CallRef{}, fmt.Errorf("%w: status 503", domain.ErrGateway)
	}
	g.calls[spec.ID] = true
	return ports.CallRef{Type: spec.Type, ID: spec.ID}, nil
}

func (g *fakeGateway) DeleteCall(_ context.Context, call ports.CallRef, _ bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.calls, call.ID)
	return nil
}

func (g *fakeGateway) CreateChannel(_ context.Context, spec ports.ChannelSpec) (ports.ChannelRef, error) {
	return ports.ChannelRef{Type: spec.Type, ID: spec.ID}, nil
}

func (g *fakeGateway) AddMember(context.Context, ports.ChannelRef, string) error { return nil }
func (g *fakeGateway) DeleteChannel(context.Context, ports.ChannelRef) error     { return nil }

func (g *fakeGateway) IssueToken(identityID string) (string, error) {
	return "chat-token-" + identityID, nil
}
