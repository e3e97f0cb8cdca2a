// Package session owns the conversation log of one farmer and drives the
// request/response cycle against the resolver.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/voice"
	logx "krishi-sakhi-backend/pkg/logger"
)

// DefaultResponseDelay is the simulated latency before a reply replaces the placeholder.
const DefaultResponseDelay = 1000 * time.Millisecond

// Reasons a submission is not accepted.
const (
	ReasonEmpty  = "empty"
	ReasonBusy   = "busy"
	ReasonClosed = "closed"
)

// Resolver computes a reply for a query in a language.
type Resolver interface {
	Resolve(query string, lang content.Language) string
}

// Listener receives a copy of the session state after every change.
type Listener func(view models.SessionView)

// Option configures a Session.
type Option func(*Session)

// WithResponseDelay overrides the simulated resolver latency.
func WithResponseDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithListener registers the change listener.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithVoice attaches a voice capture adapter.
func WithVoice(a *voice.Adapter) Option {
	return func(s *Session) { s.voice = a }
}

// Session is one conversation. Only one submission can be in flight at a time.
// All methods are safe for concurrent use.
type Session struct {
	id       uuid.UUID
	store    *content.Store
	resolver Resolver
	delay    time.Duration
	listener Listener
	voice    *voice.Adapter

	mu                sync.Mutex
	language          content.Language
	messages          []models.Message
	busy              bool
	submitted         bool
	draft             string
	suppliersExpanded bool
	version           uint64
	pending           *time.Timer
	closed            bool
	lastActive        time.Time
}

// New creates a session that starts with the greeting of lang.
func New(id uuid.UUID, lang content.Language, store *content.Store, resolver Resolver, opts ...Option) *Session {
	s := &Session{
		id:         id,
		store:      store,
		resolver:   resolver,
		delay:      DefaultResponseDelay,
		language:   lang,
		lastActive: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.voice == nil {
		s.voice = voice.NewAdapter(nil)
	}
	s.messages = []models.Message{{
		Text:   store.Table(lang).Greeting,
		Origin: models.OriginAssistant,
	}}
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Submit appends the user message and a pending placeholder, then resolves
// the reply after the response delay. Blank text and submissions made while
// another one is in flight are ignored.
func (s *Session) Submit(text string) models.SubmitResponse {
	if strings.TrimSpace(text) == "" {
		return models.SubmitResponse{Reason: ReasonEmpty}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.SubmitResponse{Reason: ReasonClosed}
	}
	if s.busy {
		s.mu.Unlock()
		return models.SubmitResponse{Reason: ReasonBusy}
	}

	s.messages = append(s.messages,
		models.Message{Text: text, Origin: models.OriginUser},
		models.Message{Text: models.PlaceholderText, Origin: models.OriginAssistant, Pending: true},
	)
	s.busy = true
	s.submitted = true
	s.draft = ""
	s.voice.Reset()

	// The reply uses the language active when the question was asked.
	lang := s.language
	s.pending = time.AfterFunc(s.delay, func() {
		s.resolve(text, lang)
	})

	view := s.touchLocked()
	s.mu.Unlock()

	logx.Debug().Str("session_id", s.id.String()).Str("language", lang.String()).Msg("submission accepted")
	s.publish(view)
	return models.SubmitResponse{Accepted: true}
}

func (s *Session) resolve(text string, lang content.Language) {
	reply := s.resolver.Resolve(text, lang)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Origin == models.OriginAssistant && s.messages[i].Pending {
			s.messages[i] = models.Message{Text: reply, Origin: models.OriginAssistant}
			break
		}
	}
	s.busy = false
	s.pending = nil
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
}

// ChangeLanguage switches the active language. Past messages are never
// retranslated; the greeting follows the language until the first submission.
func (s *Session) ChangeLanguage(lang content.Language) models.SessionView {
	s.mu.Lock()
	s.language = lang
	if !s.submitted && len(s.messages) == 1 {
		s.messages[0].Text = s.store.Table(lang).Greeting
	}
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
	return view
}

// SetDraft replaces the pending query text.
func (s *Session) SetDraft(text string) models.SessionView {
	s.mu.Lock()
	s.draft = text
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
	return view
}

// ToggleSuppliers flips the supplier panel flag.
func (s *Session) ToggleSuppliers() models.SessionView {
	s.mu.Lock()
	s.suppliersExpanded = !s.suppliersExpanded
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
	return view
}

// ToggleVoice starts or stops dictation in the session language.
func (s *Session) ToggleVoice() (models.VoiceState, error) {
	s.mu.Lock()
	lang := s.language
	s.mu.Unlock()

	before := s.voice.State()
	state, err := s.voice.Toggle(lang)
	if err != nil && state == before {
		return state, err
	}

	// A failed stop still ends capture, so clients must see it.
	s.mu.Lock()
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
	return state, err
}

// UpdateTranscript overwrites the draft with the cumulative transcript while listening.
func (s *Session) UpdateTranscript(transcript string) models.VoiceState {
	apply := s.voice.UpdateTranscript(transcript)

	s.mu.Lock()
	if apply {
		s.draft = transcript
	}
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
	return view.Voice
}

// VoiceEnded records that the host stopped dictation on its own.
func (s *Session) VoiceEnded() models.VoiceState {
	s.voice.Ended()

	s.mu.Lock()
	view := s.touchLocked()
	s.mu.Unlock()

	s.publish(view)
	return view.Voice
}

// View returns a copy of the current state.
func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// IdleSince reports when the session last changed.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close cancels a scheduled reply and stops publishing. Safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Session) touchLocked() models.SessionView {
	s.version++
	s.lastActive = time.Now()
	return s.viewLocked()
}

func (s *Session) viewLocked() models.SessionView {
	msgs := make([]models.Message, len(s.messages))
	copy(msgs, s.messages)
	return models.SessionView{
		ID:                s.id,
		Version:           s.version,
		Language:          s.language,
		Messages:          msgs,
		Busy:              s.busy,
		Draft:             s.draft,
		SuppliersExpanded: s.suppliersExpanded,
		Voice:             s.voice.State(),
	}
}

func (s *Session) publish(view models.SessionView) {
	if s.listener == nil {
		return
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.listener(view)
}
