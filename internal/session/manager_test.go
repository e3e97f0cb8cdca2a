package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/resolver"
)

// mockPublisher collects published views and voice commands.
type mockPublisher struct {
	mu       sync.Mutex
	views    []models.SessionView
	commands map[uuid.UUID][]models.VoiceCommand
	ended    []uuid.UUID
}

func (p *mockPublisher) EndSession(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = append(p.ended, id)
}

func (p *mockPublisher) endedSessions() []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uuid.UUID(nil), p.ended...)
}

func (p *mockPublisher) PublishSession(v models.SessionView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, v)
}

func (p *mockPublisher) SendVoiceCommand(id uuid.UUID, cmd models.VoiceCommand) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.commands == nil {
		p.commands = make(map[uuid.UUID][]models.VoiceCommand)
	}
	p.commands[id] = append(p.commands[id], cmd)
	return nil
}

func (p *mockPublisher) viewCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.views)
}

func setupManager(t *testing.T, opts ...ManagerOption) (*Manager, *mockPublisher) {
	t.Helper()
	store := content.NewStore()
	pub := &mockPublisher{}
	opts = append([]ManagerOption{WithPublisher(pub), WithSessionResponseDelay(10 * time.Millisecond)}, opts...)
	m := NewManager(store, resolver.New(store), opts...)
	t.Cleanup(m.Stop)
	return m, pub
}

func TestManagerLifecycle(t *testing.T) {
	m, pub := setupManager(t)

	s := m.Create(content.English, false)
	got, err := m.Get(s.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatal("expected the same session back")
	}

	s.Submit("soil")
	waitIdle(t, s)
	if pub.viewCount() < 2 {
		t.Fatalf("expected submit and reply to be published, got %d views", pub.viewCount())
	}

	if err := m.End(s.ID()); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := m.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.End(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second end, got %v", err)
	}
	if ended := pub.endedSessions(); len(ended) != 1 || ended[0] != s.ID() {
		t.Fatalf("expected clients to be told once, got %v", ended)
	}
}

func TestManagerRoutesVoiceCommands(t *testing.T) {
	m, pub := setupManager(t)

	s := m.Create(content.English, true)
	if _, err := s.ToggleVoice(); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	pub.mu.Lock()
	cmds := pub.commands[s.ID()]
	pub.mu.Unlock()
	if len(cmds) != 1 || cmds[0].Locale != "en-IN" {
		t.Fatalf("expected en-IN start command for the session, got %+v", cmds)
	}
}

func TestManagerReapsIdleSessions(t *testing.T) {
	m, pub := setupManager(t, WithIdleTimeout(time.Minute))

	idle := m.Create(content.Hindi, false)
	fresh := m.Create(content.Hindi, false)

	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	if n := m.reap(time.Now()); n != 1 {
		t.Fatalf("expected 1 reaped session, got %d", n)
	}
	if _, err := m.Get(idle.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("expected idle session to be gone")
	}
	if _, err := m.Get(fresh.ID()); err != nil {
		t.Fatalf("expected fresh session to survive: %v", err)
	}
	if ended := pub.endedSessions(); len(ended) != 1 || ended[0] != idle.ID() {
		t.Fatalf("expected clients of the reaped session to be closed, got %v", ended)
	}
}

func TestManagerStartStop(t *testing.T) {
	m, _ := setupManager(t, WithIdleTimeout(20*time.Millisecond))

	m.Start(context.Background())
	m.Start(context.Background())
	m.Create(content.English, false)

	deadline := time.Now().Add(time.Second)
	for m.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if m.Len() != 0 {
		t.Fatal("expected janitor to reap the idle session")
	}

	m.Stop()
	m.Stop()
}
