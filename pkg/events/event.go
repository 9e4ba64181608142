package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used when reconstructing events
// from the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// DocumentIndexedEvent is emitted after a document's chunks were embedded and
// stored in the vector index.
type DocumentIndexedEvent struct {
	DocumentKey    string
	Title          string
	ChunkCount     int
	OrganisationId int
	ProjectId      int
	OccurredAt     time.Time
}

func (e DocumentIndexedEvent) EventType() string {
	return "DOCUMENT_INDEXED"
}

func (e DocumentIndexedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"document_key":    e.DocumentKey,
		"title":           e.Title,
		"chunk_count":     e.ChunkCount,
		"organisation_id": e.OrganisationId,
		"project_id":      e.ProjectId,
	}
}

func (e DocumentIndexedEvent) Timestamp() time.Time {
	return e.OccurredAt
}
