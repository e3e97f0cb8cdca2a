package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/voice"
	logx "krishi-sakhi-backend/pkg/logger"
)

// ErrSessionNotFound is returned for unknown or ended sessions.
var ErrSessionNotFound = errors.New("session not found")

// DefaultIdleTimeout is how long an untouched session is kept.
const DefaultIdleTimeout = 30 * time.Minute

// Publisher pushes session state and voice commands to connected clients.
type Publisher interface {
	PublishSession(view models.SessionView)
	SendVoiceCommand(sessionID uuid.UUID, cmd models.VoiceCommand) error
	EndSession(sessionID uuid.UUID)
}

type nopPublisher struct{}

func (nopPublisher) PublishSession(models.SessionView) {}

func (nopPublisher) SendVoiceCommand(uuid.UUID, models.VoiceCommand) error { return nil }

func (nopPublisher) EndSession(uuid.UUID) {}

// ManagerOption configures the manager.
type ManagerOption func(*Manager)

// WithSessionResponseDelay sets the response delay of every new session.
func WithSessionResponseDelay(d time.Duration) ManagerOption {
	return func(m *Manager) { m.delay = d }
}

// WithIdleTimeout sets how long idle sessions survive.
func WithIdleTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.idleTimeout = d }
}

// WithPublisher sets where session changes and voice commands go.
func WithPublisher(p Publisher) ManagerOption {
	return func(m *Manager) { m.publisher = p }
}

// Manager keeps the live sessions in memory, keyed by id.
type Manager struct {
	store       *content.Store
	resolver    Resolver
	delay       time.Duration
	idleTimeout time.Duration
	publisher   Publisher

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	running  bool
	cancel   context.CancelFunc
}

func NewManager(store *content.Store, resolver Resolver, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		resolver:    resolver,
		delay:       DefaultResponseDelay,
		idleTimeout: DefaultIdleTimeout,
		publisher:   nopPublisher{},
		sessions:    make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a session. voiceAvailable is what the client reported about
// its dictation support.
func (m *Manager) Create(lang content.Language, voiceAvailable bool) *Session {
	id := uuid.New()
	capability := voice.NewRemoteCapability(voiceAvailable, func(cmd models.VoiceCommand) error {
		return m.publisher.SendVoiceCommand(id, cmd)
	})

	s := New(id, lang, m.store, m.resolver,
		WithResponseDelay(m.delay),
		WithVoice(voice.NewAdapter(capability)),
		WithListener(m.publisher.PublishSession),
	)

	m.mu.Lock()
	m.sessions[id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	logx.Info().Str("session_id", id.String()).Str("language", lang.String()).
		Bool("voice", voiceAvailable).Int("active", count).Msg("session created")
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End closes and forgets a session.
func (m *Manager) End(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	m.publisher.EndSession(id)
	logx.Info().Str("session_id", id.String()).Msg("session ended")
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start runs the idle-session janitor until Stop or ctx cancellation. Non-blocking.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		logx.Warn().Msg("session janitor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true

	interval := m.idleTimeout / 2
	if interval <= 0 {
		interval = time.Minute
	}
	go m.loop(childCtx, interval)
}

// Stop halts the janitor and closes every session.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.running {
		m.cancel()
		m.running = false
	}
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (m *Manager) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.reap(now)
		}
	}
}

// reap ends sessions idle for longer than the idle timeout.
func (m *Manager) reap(now time.Time) int {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.IdleSince()) > m.idleTimeout {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
		m.publisher.EndSession(s.ID())
	}
	if len(expired) > 0 {
		logx.Info().Int("count", len(expired)).Msg("reaped idle sessions")
	}
	return len(expired)
}
