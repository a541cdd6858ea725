package specification

import (
	"gorm.io/gorm"
)

// BySessionID filters rows belonging to one chat session
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionID)
}

// ChronologicalOrder sorts the message log oldest-first. Ties on created_at
// are broken by id so user/assistant pairs written in the same transaction
// keep their insert order.
type ChronologicalOrder struct{}

func (s ChronologicalOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// ActiveDocument filters for the currently active document
type ActiveDocument struct{}

func (s ActiveDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
