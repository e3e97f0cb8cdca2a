package models

// VoiceState mirrors the dictation capability for one session.
type VoiceState struct {
	Available      bool   `json:"available"`
	Listening      bool   `json:"listening"`
	LiveTranscript string `json:"live_transcript"`
	Locale         string `json:"locale,omitempty"`
}

// VoiceCommand asks the host to start or stop dictation.
type VoiceCommand struct {
	Action     string `json:"action"` // "start" | "stop"
	Locale     string `json:"locale,omitempty"`
	Continuous bool   `json:"continuous"`
}

type TranscriptRequest struct {
	Transcript string `json:"transcript"`
}
