package contract

import (
	"context"

	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/specification"
)

// ChatMessageRepository is append-only by design: no Update method exists.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	FindLast(ctx context.Context, sessionID string) (*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
	DeleteAll(ctx context.Context) error
}
