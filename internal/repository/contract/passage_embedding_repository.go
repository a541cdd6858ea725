package contract

import (
	"context"

	"paper-rag-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredPassageEmbedding wraps PassageEmbedding with its similarity score
type ScoredPassageEmbedding struct {
	Embedding  *entity.PassageEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type PassageEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.PassageEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteAllUnscoped(ctx context.Context) error // Hard delete, used by clear-all
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
	// SearchSimilarWithScore returns the closest chunks of one document by
	// cosine similarity, including their stored vectors so the caller can
	// re-rank for diversity.
	SearchSimilarWithScore(ctx context.Context, documentId uuid.UUID, embedding []float32, limit int) ([]*ScoredPassageEmbedding, error)
}
