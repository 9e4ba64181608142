package dto

// ChatMessageRequest is the body of POST /api/v1/message. Tenant scoping is
// optional and falls back to the default organisation/project.
type ChatMessageRequest struct {
	Message        string `json:"message" validate:"required"`
	OrganisationId int    `json:"organisation_id"`
	ProjectId      int    `json:"project_id"`
	IsVoice        bool   `json:"is_voice"`
}

// ChatResponse is returned by both the text and the voice endpoints.
// Timestamp is unix seconds with a fractional part.
type ChatResponse struct {
	Answer     string  `json:"answer"`
	Transcript string  `json:"transcript,omitempty"`
	AudioURL   string  `json:"audio_url,omitempty"`
	IsVoice    bool    `json:"is_voice"`
	Timestamp  float64 `json:"timestamp"`
}

// HealthResponse reports service identity, voice availability and a few
// liveness counters.
type HealthResponse struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	Version           string `json:"version"`
	VoiceEnabled      bool   `json:"voice_enabled"`
	IndexedChunks     int64  `json:"indexed_chunks"`
	ActiveConnections int    `json:"active_connections"`
	CachedAudioFiles  int    `json:"cached_audio_files"`
}
