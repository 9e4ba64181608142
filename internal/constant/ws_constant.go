package constant

// WebSocket frame types, client to server.
const (
	WsFrameUserMessage = "user_message"
	WsFramePing        = "ping"
)

// WebSocket frame types, server to client.
const (
	WsFrameBotResponse = "bot_response"
	WsFrameTyping      = "typing"
	WsFramePong        = "pong"
	WsFrameError       = "error"
)
