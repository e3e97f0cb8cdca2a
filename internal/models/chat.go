package models

import (
	"github.com/google/uuid"

	"krishi-sakhi-backend/internal/content"
)

// Origin tells who authored a message.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// PlaceholderText is shown while a reply is being computed.
const PlaceholderText = "..."

// Message is one entry of the conversation log.
type Message struct {
	Text    string `json:"text"`
	Origin  Origin `json:"origin"`
	Pending bool   `json:"pending"`
}

// SessionView is the read-only state of a conversation session.
type SessionView struct {
	ID                uuid.UUID        `json:"id"`
	Version           uint64           `json:"version"`
	Language          content.Language `json:"language"`
	Messages          []Message        `json:"messages"`
	Busy              bool             `json:"busy"`
	Draft             string           `json:"draft"`
	SuppliersExpanded bool             `json:"suppliers_expanded"`
	Voice             VoiceState       `json:"voice"`
}

// CreateSessionRequest is the payload for starting a session.
type CreateSessionRequest struct {
	Language       string `json:"language"`
	VoiceAvailable bool   `json:"voice_available"`
}

// SubmitRequest is the payload sent to the messages endpoint.
type SubmitRequest struct {
	Text string `json:"text"`
}

// SubmitResponse reports whether a submission was taken.
type SubmitResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"` // "empty" | "busy"
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type DraftRequest struct {
	Text string `json:"text"`
}
