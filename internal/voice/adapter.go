// Package voice bridges a host-provided continuous dictation capability
// to a session's pending query text.
package voice

import (
	"errors"
	"fmt"
	"sync"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/models"
)

// ErrCapabilityUnavailable is returned when the host has no dictation support.
var ErrCapabilityUnavailable = errors.New("speech capability unavailable")

// Capability is the host dictation facility. The browser implements the
// real thing; RemoteCapability forwards commands to it.
type Capability interface {
	Available() bool
	Start(locale string, continuous bool) error
	Stop() error
}

// Adapter tracks listening state and the cumulative transcript.
// All methods are safe for concurrent use.
type Adapter struct {
	capability Capability

	mu         sync.Mutex
	listening  bool
	transcript string
	locale     string
}

func NewAdapter(capability Capability) *Adapter {
	return &Adapter{capability: capability}
}

// Toggle stops capture when listening, otherwise starts continuous capture
// with the locale of lang.
func (a *Adapter) Toggle(lang content.Language) (models.VoiceState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.capability == nil || !a.capability.Available() {
		return a.stateLocked(), ErrCapabilityUnavailable
	}

	if a.listening {
		// A host that cannot be reached is not capturing either.
		a.listening = false
		if err := a.capability.Stop(); err != nil {
			return a.stateLocked(), fmt.Errorf("stopping dictation: %w", err)
		}
		return a.stateLocked(), nil
	}

	locale := lang.Locale()
	if err := a.capability.Start(locale, true); err != nil {
		return a.stateLocked(), fmt.Errorf("starting dictation: %w", err)
	}
	a.listening = true
	a.locale = locale
	return a.stateLocked(), nil
}

// UpdateTranscript records the cumulative transcript reported by the host.
// It returns true when the transcript should overwrite the pending query,
// which is only while listening and for non-empty text.
func (a *Adapter) UpdateTranscript(transcript string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.listening {
		return false
	}
	a.transcript = transcript
	return transcript != ""
}

// Ended marks capture as stopped by the host itself.
func (a *Adapter) Ended() {
	a.mu.Lock()
	a.listening = false
	a.mu.Unlock()
}

// Reset clears the transcript buffer so stale text does not reappear.
func (a *Adapter) Reset() {
	a.mu.Lock()
	a.transcript = ""
	a.mu.Unlock()
}

// State returns a copy of the capture state.
func (a *Adapter) State() models.VoiceState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Adapter) stateLocked() models.VoiceState {
	return models.VoiceState{
		Available:      a.capability != nil && a.capability.Available(),
		Listening:      a.listening,
		LiveTranscript: a.transcript,
		Locale:         a.locale,
	}
}
