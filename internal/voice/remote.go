package voice

import (
	"krishi-sakhi-backend/internal/models"
)

// Compile-time interface check.
var _ Capability = (*RemoteCapability)(nil)

// Sender delivers a voice command to the host running speech recognition.
type Sender func(cmd models.VoiceCommand) error

// RemoteCapability drives dictation running in the client by sending
// voice_command frames. Availability is reported by the client when the
// session is created.
type RemoteCapability struct {
	available bool
	send      Sender
}

func NewRemoteCapability(available bool, send Sender) *RemoteCapability {
	return &RemoteCapability{available: available, send: send}
}

func (c *RemoteCapability) Available() bool {
	return c.available && c.send != nil
}

func (c *RemoteCapability) Start(locale string, continuous bool) error {
	if !c.Available() {
		return ErrCapabilityUnavailable
	}
	return c.send(models.VoiceCommand{Action: "start", Locale: locale, Continuous: continuous})
}

func (c *RemoteCapability) Stop() error {
	if !c.Available() {
		return ErrCapabilityUnavailable
	}
	return c.send(models.VoiceCommand{Action: "stop"})
}
