package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are append-only. No UpdatedAt/DeletedAt: the message log
// is never mutated, only written once and read in chronological order.
type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content       string    `gorm:"type:text;not null"`
	Role          string    `gorm:"type:varchar(50);not null"`
	ChatSessionId string    `gorm:"type:text;not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
