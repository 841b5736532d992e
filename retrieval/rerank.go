package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/clausecheck/ai"
	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/corpus"
)

// Semantic rerank defaults
const (
	DefaultRerankTopK    = 20
	DefaultMinSimilarity = 0.70
	DefaultLexicalTopK   = 200
)

// Reranker narrows lexical candidates by cosine similarity between the query
// embedding and precomputed clause embeddings. The query is embedded exactly
// once per call; clause vectors come from the corpus.
type Reranker struct {
	embedder      ai.Embedder
	corpus        *corpus.Corpus
	topK          int
	minSimilarity float64
	logger        *slog.Logger
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker)

// WithRerankTopK overrides the maximum number of reranked candidates.
func WithRerankTopK(topK int) RerankerOption {
	return func(r *Reranker) { r.topK = topK }
}

// WithMinSimilarity overrides the similarity floor for keeping a candidate.
func WithMinSimilarity(min float64) RerankerOption {
	return func(r *Reranker) { r.minSimilarity = min }
}

// NewReranker creates a reranker over the given corpus.
func NewReranker(embedder ai.Embedder, c *corpus.Corpus, opts ...RerankerOption) *Reranker {
	r := &Reranker{
		embedder:      embedder,
		corpus:        c,
		topK:          DefaultRerankTopK,
		minSimilarity: DefaultMinSimilarity,
		logger:        slog.Default().With("component", "reranker"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank embeds the query once, scores each candidate against its clause
// vector, drops candidates below the similarity floor, and returns at most
// topK candidates ordered by descending similarity. An embedder failure is
// returned to the caller so the pipeline can fall back to lexical-only
// matching.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []core.MatchCandidate) ([]core.MatchCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	queryVector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	queryVector = NormalizeVector(queryVector)

	kept := make([]core.MatchCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		clause, ok := r.corpus.Clause(candidate.Key)
		if !ok || len(clause.Vector) == 0 {
			r.logger.Warn("candidate clause missing vector", "clause", candidate.Key.String())
			continue
		}

		candidate.Similarity = float64(CosineSimilarity(queryVector, clause.Vector))
		if candidate.Similarity >= r.minSimilarity {
			kept = append(kept, candidate)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Similarity != kept[j].Similarity {
			return kept[i].Similarity > kept[j].Similarity
		}
		if kept[i].Key.ArticleNumber != kept[j].Key.ArticleNumber {
			return kept[i].Key.ArticleNumber < kept[j].Key.ArticleNumber
		}
		return kept[i].Key.Label < kept[j].Key.Label
	})

	if len(kept) > r.topK {
		kept = kept[:r.topK]
	}
	return kept, nil
}
