package retriever

import (
	"context"
	"fmt"
	"log"

	"paper-rag-be/internal/repository/contract"
	"paper-rag-be/pkg/embedding"
	"paper-rag-be/pkg/store"

	"github.com/google/uuid"
)

// Retriever performs diversity-aware similarity search over one document's
// chunk index. It over-fetches by cosine similarity and re-ranks the
// candidates with maximal marginal relevance so near-duplicate chunks do
// not crowd out complementary ones.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	embeddingRepo     contract.PassageEmbeddingRepository
	topK              int
	fetchK            int
	lambda            float64
	logger            *log.Logger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	embeddingRepo contract.PassageEmbeddingRepository,
	topK int,
	fetchK int,
	lambda float64,
	logger *log.Logger,
) *Retriever {
	if fetchK < topK {
		fetchK = topK
	}
	return &Retriever{
		embeddingProvider: embeddingProvider,
		embeddingRepo:     embeddingRepo,
		topK:              topK,
		fetchK:            fetchK,
		lambda:            lambda,
		logger:            logger,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, documentId uuid.UUID, query string) ([]store.Passage, error) {
	res, err := r.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVector := res.Embedding.Values

	candidates, err := r.embeddingRepo.SearchSimilarWithScore(ctx, documentId, queryVector, r.fetchK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(candidates) == 0 {
		r.logger.Printf("[RETRIEVER] No candidates for document %s", documentId)
		return []store.Passage{}, nil
	}

	selected := maximalMarginalRelevance(queryVector, candidates, r.topK, r.lambda)

	passages := make([]store.Passage, 0, len(selected))
	for _, c := range selected {
		passages = append(passages, store.Passage{
			Content:  c.Embedding.Content,
			Metadata: c.Embedding.Metadata,
			Score:    c.Similarity,
		})
	}

	r.logger.Printf("[RETRIEVER] Selected %d of %d candidates", len(passages), len(candidates))
	return passages, nil
}
