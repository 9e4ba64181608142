package dto

// IngestDocumentRequest is the body of POST /api/v1/document. The document is
// chunked, embedded and indexed asynchronously.
type IngestDocumentRequest struct {
	Title          string                 `json:"title" validate:"required"`
	Description    string                 `json:"description"`
	Content        string                 `json:"content" validate:"required"`
	OrganisationId int                    `json:"organisation_id"`
	ProjectId      int                    `json:"project_id"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// IngestDocumentResponse acknowledges that indexing was queued.
type IngestDocumentResponse struct {
	DocumentKey string `json:"document_key"`
	Status      string `json:"status"`
}

// PublishEmbedDocumentMessage is the queue payload handed from the ingest
// endpoint to the embedding consumer.
type PublishEmbedDocumentMessage struct {
	DocumentKey    string                 `json:"document_key"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Content        string                 `json:"content"`
	OrganisationId int                    `json:"organisation_id"`
	ProjectId      int                    `json:"project_id"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}
