package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry of a session's append-only message log.
// Messages are never updated in place; ordering is (created_at, id).
type ChatMessage struct {
	Id            uuid.UUID
	Content       string
	Role          string
	ChatSessionId string
	CreatedAt     time.Time
}
