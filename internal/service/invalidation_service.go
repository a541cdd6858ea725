package service

import (
	"context"
	"fmt"

	"paper-rag-be/internal/pkg/logger"
	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/pkg/events"
	pktNats "paper-rag-be/pkg/nats" // Renamed to avoid collision
)

// InvalidationService listens to document lifecycle events on the bus and
// drops cached turn snapshots. The local swap path already flushes
// in-process; this covers flushes triggered by another instance.
type InvalidationService struct {
	subscriber *pktNats.Subscriber
	turnCache  *memory.TurnCache
	logger     logger.ILogger
}

func NewInvalidationService(sub *pktNats.Subscriber, turnCache *memory.TurnCache, log logger.ILogger) *InvalidationService {
	return &InvalidationService{
		subscriber: sub,
		turnCache:  turnCache,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *InvalidationService) Start() {
	// Subscribe to document events with a durable consumer
	err := s.subscriber.Subscribe("events.document.>", "cache-invalidation-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("InvalidationService", "Failed to start invalidation subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("InvalidationService", "Invalidation service started, listening to events.document.>", nil)
}

func (s *InvalidationService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeDocumentActivated, events.TypeDocumentsCleared:
		s.turnCache.Flush()
		s.logger.Info("InvalidationService", fmt.Sprintf("Turn cache flushed on %s", event.EventType()), nil)
	default:
		s.logger.Warn("InvalidationService", fmt.Sprintf("Ignoring unexpected event: %s", event.EventType()), nil)
	}
	return nil
}
