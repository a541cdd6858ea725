package dto

import "github.com/google/uuid"

type UploadDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	ChunkCount int       `json:"chunk_count"`
}

// ChunkPayload is one pre-chunked passage carried in an index job.
type ChunkPayload struct {
	Index    int               `json:"index"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PublishIndexDocumentMessage is the payload of an embedding job on the
// index topic. Chunking happens on the upload path, embedding in the
// consumer.
type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID      `json:"document_id"`
	Chunks     []ChunkPayload `json:"chunks"`
}
