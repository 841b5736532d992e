package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use and must return
// unit-normalized vectors of a fixed dimensionality.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ClauseJudge adjudicates whether a regulatory clause is covered by a
// document excerpt. Implementations must be thread-safe for concurrent use.
type ClauseJudge interface {
	// Judge evaluates the coverage of one clause against a bounded document
	// excerpt and returns a Verdict. A response that cannot be parsed into
	// the expected shape is an error, never a half-filled Verdict.
	Judge(ctx context.Context, req JudgeRequest) (*Verdict, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// ClauseJudge instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Judge returns the clause adjudication service.
	// The returned ClauseJudge is safe for concurrent use.
	Judge() ClauseJudge

	// ModelID returns the identifier of the adjudication model,
	// reported on the status surface.
	ModelID() string

	// Ping checks whether the adjudication backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
