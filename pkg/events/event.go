package events

import "time"

// Event types published on the bus.
const (
	TypeDocumentActivated = "document.activated"
	TypeDocumentsCleared  = "document.cleared"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "document.activated").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// NewDocumentActivated announces that a freshly indexed document replaced
// the previous one. Consumers holding retrieval state should invalidate it.
func NewDocumentActivated(documentId, filename string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentActivated,
		Data: map[string]interface{}{
			"document_id": documentId,
			"filename":    filename,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentsCleared announces a full wipe of documents and sessions.
func NewDocumentsCleared() Event {
	return BaseEvent{
		Type:       TypeDocumentsCleared,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
}
