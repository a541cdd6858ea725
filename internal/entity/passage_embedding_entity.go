package entity

import (
	"time"

	"github.com/google/uuid"
)

// PassageEmbedding is one indexed chunk of the active document.
type PassageEmbedding struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	ChunkIndex     int
	Content        string
	Metadata       map[string]string // section headers and friends
	EmbeddingValue []float32
	CreatedAt      time.Time
}
