package dto

// WsClientFrame is what the browser sends over the socket.
type WsClientFrame struct {
	Type           string `json:"type"`
	Text           string `json:"text,omitempty"`
	OrganisationId int    `json:"organisation_id,omitempty"`
	ProjectId      int    `json:"project_id,omitempty"`
	IsVoice        bool   `json:"isVoice,omitempty"`
}

// WsBotResponseFrame carries the assistant's reply back to the client.
type WsBotResponseFrame struct {
	Type      string  `json:"type"`
	Text      string  `json:"text"`
	IsVoice   bool    `json:"isVoice"`
	AudioURL  string  `json:"audioUrl,omitempty"`
	Timestamp float64 `json:"timestamp"`
}

// WsTypingFrame toggles the typing indicator.
type WsTypingFrame struct {
	Type     string `json:"type"`
	IsTyping bool   `json:"isTyping"`
}

// WsPongFrame answers a ping.
type WsPongFrame struct {
	Type string `json:"type"`
}

// WsErrorFrame reports a per-message failure without closing the socket.
type WsErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
