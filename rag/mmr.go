package rag

import (
	"hauibot/pkg/embedding"
	"hauibot/repository"
)

// mmrLambda balances query relevance against diversity when re-ranking
// search candidates.
const mmrLambda = 0.5

// maximalMarginalRelevance greedily picks k candidates. Each round selects
// the candidate with the best trade-off between similarity to the query and
// similarity to the chunks already picked, so near-duplicate chunks stop
// crowding out lower-ranked but distinct ones.
func maximalMarginalRelevance(queryVec []float32, candidates []repository.ScoredChunk, k int) []repository.ScoredChunk {
	if k >= len(candidates) {
		return candidates
	}

	relevance := make([]float32, len(candidates))
	for i := range candidates {
		relevance[i] = embedding.CosineSimilarity(queryVec, candidates[i].Vector)
	}

	picked := make([]bool, len(candidates))
	selected := make([]repository.ScoredChunk, 0, k)

	for len(selected) < k {
		best := -1
		var bestScore float32
		for i := range candidates {
			if picked[i] {
				continue
			}
			var maxSim float32
			for j := range selected {
				if sim := embedding.CosineSimilarity(candidates[i].Vector, selected[j].Vector); sim > maxSim {
					maxSim = sim
				}
			}
			score := mmrLambda*relevance[i] - (1-mmrLambda)*maxSim
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		picked[best] = true
		selected = append(selected, candidates[best])
	}
	return selected
}
