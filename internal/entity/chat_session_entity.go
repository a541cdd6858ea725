package entity

import (
	"time"
)

// ChatSession is one logical conversation thread. The id is an opaque
// caller-chosen string (e.g. "session_1a2b3c4d"), not a UUID.
type ChatSession struct {
	Id        string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
