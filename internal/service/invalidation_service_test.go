package service

import (
	"context"
	"testing"

	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/pkg/events"
	"paper-rag-be/pkg/store"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func TestInvalidationFlushesOnDocumentEvents(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		wantFlush bool
	}{
		{"document activated", events.TypeDocumentActivated, true},
		{"documents cleared", events.TypeDocumentsCleared, true},
		{"unrelated event", "document.renamed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := memory.NewTurnCache()
			cache.Save(&store.TurnState{SessionID: "session_abc"})

			svc := NewInvalidationService(nil, cache, noopLogger{})
			if err := svc.handleEvent(context.Background(), events.BaseEvent{Type: tt.eventType}); err != nil {
				t.Fatalf("handleEvent() error = %v", err)
			}

			_, found := cache.Get("session_abc")
			if found == tt.wantFlush {
				t.Errorf("cache entry found = %v after %s, want %v", found, tt.eventType, !tt.wantFlush)
			}
		})
	}
}
