package handlers

import (
	"net/http"

	"krishi-sakhi-backend/internal/models"
)

// ToggleVoice starts or stops dictation in the session language.
func (h *SessionHandler) ToggleVoice(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	state, err := s.ToggleVoice()
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateTranscript receives the cumulative transcript from the browser.
func (h *SessionHandler) UpdateTranscript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.TranscriptRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	writeJSON(w, http.StatusOK, s.UpdateTranscript(req.Transcript))
}

// VoiceEnded is called when the browser stops recognition on its own.
func (h *SessionHandler) VoiceEnded(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.VoiceEnded())
}
