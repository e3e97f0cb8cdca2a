package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/session"
)

type sessionManager interface {
	Create(lang content.Language, voiceAvailable bool) *session.Session
	Get(id uuid.UUID) (*session.Session, error)
	End(id uuid.UUID) error
}

type SessionHandler struct {
	sessions        sessionManager
	defaultLanguage content.Language
}

func NewSessionHandler(sessions sessionManager, defaultLanguage content.Language) *SessionHandler {
	return &SessionHandler{
		sessions:        sessions,
		defaultLanguage: defaultLanguage,
	}
}

// load resolves the {id} URL parameter, writing the error response itself.
func (h *SessionHandler) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, ok := sessionIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return nil, false
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		handleServiceError(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	lang, err := languageOrDefault(req.Language, h.defaultLanguage)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	s := h.sessions.Create(lang, req.VoiceAvailable)
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	if err := h.sessions.End(id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Submit queues a question. Rejections are not errors: they come back as
// 200 with accepted=false and the reason.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.SubmitRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp := s.Submit(req.Text)
	if !resp.Accepted {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (h *SessionHandler) ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.LanguageRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	lang, err := content.ParseLanguage(req.Language)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.ChangeLanguage(lang))
}

func (h *SessionHandler) SetDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	var req models.DraftRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	writeJSON(w, http.StatusOK, s.SetDraft(req.Text))
}

func (h *SessionHandler) ToggleSuppliers(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.ToggleSuppliers())
}
