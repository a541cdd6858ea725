package retriever

import (
	"math"

	"paper-rag-be/internal/repository/contract"
)

// maximalMarginalRelevance greedily picks k candidates balancing query
// relevance against redundancy with the picks so far. lambda 1.0 is pure
// relevance, 0.0 is pure diversity.
func maximalMarginalRelevance(queryVector []float32, candidates []*contract.ScoredPassageEmbedding, k int, lambda float64) []*contract.ScoredPassageEmbedding {
	if k >= len(candidates) {
		return candidates
	}

	queryScores := make([]float64, len(candidates))
	for i, c := range candidates {
		queryScores[i] = cosineSimilarity(queryVector, c.Embedding.EmbeddingValue)
	}

	selected := make([]*contract.ScoredPassageEmbedding, 0, k)
	picked := make([]bool, len(candidates))

	for len(selected) < k {
		bestIdx := -1
		bestScore := math.Inf(-1)
		for i, c := range candidates {
			if picked[i] {
				continue
			}
			maxRedundancy := 0.0
			for j, other := range candidates {
				if !picked[j] {
					continue
				}
				sim := cosineSimilarity(c.Embedding.EmbeddingValue, other.Embedding.EmbeddingValue)
				if sim > maxRedundancy {
					maxRedundancy = sim
				}
			}
			score := lambda*queryScores[i] - (1-lambda)*maxRedundancy
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		picked[bestIdx] = true
		selected = append(selected, candidates[bestIdx])
	}

	return selected
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
