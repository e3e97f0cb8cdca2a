package handlers

import (
	"net/http"

	"krishi-sakhi-backend/internal/models"
)

type weatherSource interface {
	Snapshot() models.WeatherSnapshot
}

type WeatherHandler struct {
	source weatherSource
}

func NewWeatherHandler(source weatherSource) *WeatherHandler {
	return &WeatherHandler{source: source}
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Snapshot())
}
