package models

import "time"

// WeatherSnapshot is the single current weather reading plus its load/error status.
type WeatherSnapshot struct {
	Temperature int       `json:"temperature"`
	Humidity    int       `json:"humidity"`
	Rainfall    float64   `json:"rainfall"`
	Loading     bool      `json:"loading"`
	Error       *string   `json:"error"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}
