package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"krishi-sakhi-backend/internal/content"
	errx "krishi-sakhi-backend/internal/core/error"
	"krishi-sakhi-backend/internal/middleware"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/session"
	"krishi-sakhi-backend/internal/voice"
	"krishi-sakhi-backend/internal/websocket"
	logx "krishi-sakhi-backend/pkg/logger"
)

const maxBodyBytes = 64 * 1024

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get(middleware.RequestIDHeader),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	resp := errorResp(code, message, r)
	resp.Error.Fields = fields
	return resp
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
	case errors.Is(err, voice.ErrCapabilityUnavailable):
		writeJSON(w, http.StatusConflict, errorResp("CAPABILITY_UNAVAILABLE", "Voice input is not available", r))
	case errors.Is(err, websocket.ErrNoClient):
		writeJSON(w, http.StatusConflict, errorResp("VOICE_CLIENT_NOT_CONNECTED", "No live connection to start or stop voice input", r))
	case errors.Is(err, content.ErrUnknownLanguage):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"language": "must be one of en, hi"}, r))
	default:
		status := errx.StatusOf(err)
		logx.Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
		switch status {
		case http.StatusBadGateway, http.StatusServiceUnavailable:
			writeJSON(w, status, errorResp("UPSTREAM_ERROR", errx.MessageOf(err), r))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
		}
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func sessionIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// languageOrDefault parses raw, using fallback when it is blank.
func languageOrDefault(raw string, fallback content.Language) (content.Language, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return content.ParseLanguage(raw)
}
