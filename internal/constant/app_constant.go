package constant

const (
	AppName    = "Voice Chatbot API"
	AppVersion = "1.0.0"

	// Tenant defaults applied when a request omits scoping
	DefaultOrganisationId = 1
	DefaultProjectId      = 1
)
