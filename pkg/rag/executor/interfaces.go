package executor

import (
	"context"

	"paper-rag-be/internal/entity"
	"paper-rag-be/pkg/store"

	"github.com/google/uuid"
)

// The pipeline depends on its collaborators through narrow interfaces so
// each stage can be swapped or stubbed independently.

type Rewriter interface {
	Rewrite(ctx context.Context, history []store.Message, question string) (string, error)
}

type Classifier interface {
	Classify(ctx context.Context, question string) (store.TopicLabel, error)
}

type Retriever interface {
	Retrieve(ctx context.Context, documentId uuid.UUID, query string) ([]store.Passage, error)
}

type Generator interface {
	Generate(ctx context.Context, history []store.Message, passages []store.Passage, question string) (string, error)
}

// TurnStore is the durable side of a turn: the active document, the
// session's message log, and the atomic commit of a completed turn.
type TurnStore interface {
	// ActiveDocument returns the currently active document, or nil when
	// no document has been uploaded yet.
	ActiveDocument(ctx context.Context) (*entity.Document, error)
	// LoadMessages returns the session's full message log in
	// chronological order. A missing session yields an empty log.
	LoadMessages(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error)
	// CommitTurn persists the turn's new messages in one transaction,
	// creating the session row on first use. Either every message is
	// stored or none are.
	CommitTurn(ctx context.Context, sessionID string, title string, messages []*entity.ChatMessage) error
}

// TurnCacher receives a snapshot of each completed turn.
type TurnCacher interface {
	Save(state *store.TurnState)
}
