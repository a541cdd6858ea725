package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded paper. Uploads swap the document wholesale:
// at most one document is active, predecessors are soft-deleted.
type Document struct {
	Id         uuid.UUID
	Filename   string
	Title      string
	ChunkCount int
	Active     bool
	CreatedAt  time.Time
	DeletedAt  *time.Time
}
