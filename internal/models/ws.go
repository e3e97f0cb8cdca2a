package models

// WebSocket frame types
const (
	WSConnected     = "connected"
	WSSessionUpdate = "session_update"
	WSWeatherUpdate = "weather_update"
	WSVoiceCommand  = "voice_command"
	WSSessionEnded  = "session_ended"
	WSError         = "error"
)

// WSMessage is one frame pushed to websocket clients.
type WSMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ConnectedPayload is the first frame a websocket client receives.
type ConnectedPayload struct {
	Session SessionView     `json:"session"`
	Weather WeatherSnapshot `json:"weather"`
}
