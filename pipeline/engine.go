// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/clausecheck/ai"
	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/corpus"
	"github.com/poiesic/clausecheck/retrieval"
	"github.com/poiesic/clausecheck/scoring"
	"github.com/poiesic/clausecheck/storage"
)

const (
	defaultPoolSize    = 8
	defaultMaxDocBytes = 10 << 20 // 10 MiB of extracted text
)

// Engine runs the full coverage pipeline: segment the document, funnel
// candidates through the lexical index and semantic reranker, optionally
// adjudicate survivors with the judge, then aggregate deterministically.
// An Engine is safe for concurrent Check calls.
type Engine struct {
	corpus   *corpus.Corpus
	embedder ai.Embedder
	lexical  *retrieval.LexicalIndex
	reranker *retrieval.Reranker
	provider ai.Provider
	cache    storage.ReportCache
	pool     *ants.Pool

	lexicalTopK   int
	rerankTopK    int
	minSimilarity float64
	maxAttempts   int
	baseDelay     time.Duration
	maxDocBytes   int

	logger *slog.Logger
}

// Status is the adjudicator status surface.
type Status struct {
	Enabled   bool   `json:"enabled"`
	Reachable bool   `json:"reachable"`
	Model     string `json:"model,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine) error

// WithJudge enables LLM adjudication through the given provider.
// Without it the engine produces semantic-only assessments.
func WithJudge(provider ai.Provider) Option {
	return func(e *Engine) error {
		e.provider = provider
		return nil
	}
}

// WithCache enables report caching keyed by document hash and corpus version.
func WithCache(cache storage.ReportCache) Option {
	return func(e *Engine) error {
		e.cache = cache
		return nil
	}
}

// WithPoolSize sets the adjudication worker pool size. Default 8.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size <= 0 {
			return ErrInvalidPoolSize
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		return nil
	}
}

// WithLexicalTopK sets how many candidates survive the lexical stage.
func WithLexicalTopK(topK int) Option {
	return func(e *Engine) error {
		e.lexicalTopK = topK
		return nil
	}
}

// WithRerankTopK sets how many candidates survive the semantic stage.
func WithRerankTopK(topK int) Option {
	return func(e *Engine) error {
		e.rerankTopK = topK
		return nil
	}
}

// WithMinSimilarity sets the semantic similarity floor.
func WithMinSimilarity(min float64) Option {
	return func(e *Engine) error {
		e.minSimilarity = min
		return nil
	}
}

// WithRetry sets the per-clause adjudication retry policy.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(e *Engine) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		e.maxAttempts = maxAttempts
		e.baseDelay = baseDelay
		return nil
	}
}

// WithMaxDocumentBytes caps accepted document size.
func WithMaxDocumentBytes(max int) Option {
	return func(e *Engine) error {
		e.maxDocBytes = max
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// New creates an Engine over an embedded corpus. The corpus must already
// have clause vectors attached.
func New(c *corpus.Corpus, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	e := &Engine{
		corpus:        c,
		embedder:      embedder,
		lexicalTopK:   retrieval.DefaultLexicalTopK,
		rerankTopK:    retrieval.DefaultRerankTopK,
		minSimilarity: retrieval.DefaultMinSimilarity,
		maxAttempts:   defaultMaxAttempts,
		baseDelay:     defaultBaseDelay,
		maxDocBytes:   defaultMaxDocBytes,
		logger:        slog.Default().With("component", "engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			if e.pool != nil {
				e.pool.Release()
			}
			return nil, err
		}
	}

	if e.pool == nil {
		pool, err := ants.NewPool(defaultPoolSize)
		if err != nil {
			return nil, err
		}
		e.pool = pool
	}

	e.lexical = retrieval.NewLexicalIndex(c)
	e.reranker = retrieval.NewReranker(embedder, c,
		retrieval.WithRerankTopK(e.rerankTopK),
		retrieval.WithMinSimilarity(e.minSimilarity))

	return e, nil
}

// Close releases the worker pool. The cache and provider are owned by the
// caller and are not closed here.
func (e *Engine) Close() error {
	e.pool.Release()
	return nil
}

// Check runs the coverage pipeline over a document and returns the report.
// Degraded AI backends shrink the report's fidelity, never fail the run:
// an unreachable embedder drops the run to lexical-only scoring and an
// unreachable judge leaves semantic scores standing. The only errors are
// input errors and context cancellation before any work completed.
func (e *Engine) Check(ctx context.Context, document string) (*core.ComplianceReport, error) {
	start := time.Now()

	doc := strings.TrimSpace(document)
	if e.maxDocBytes > 0 && len(doc) > e.maxDocBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrDocumentTooLarge, len(doc), e.maxDocBytes)
	}
	if doc == "" {
		report := scoring.Compute(scoring.Aggregate(e.corpus, nil))
		report.Warning = "document contains no extractable text"
		report.Performance = core.Performance{ElapsedTimeSeconds: time.Since(start).Seconds()}
		return report, nil
	}

	key := storage.CacheKey{
		DocumentHash:  core.HashDocument(doc),
		CorpusVersion: e.corpus.Version(),
	}
	if e.cache != nil {
		if cached, err := e.cache.Get(ctx, key); err == nil {
			e.logger.Debug("report cache hit", "hash", fmt.Sprintf("%016x", uint64(key.DocumentHash)))
			return cached, nil
		} else if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn("report cache read failed", "error", err)
		}
	}

	res := e.assess(ctx, doc)

	report := scoring.Compute(scoring.Aggregate(e.corpus, res.assessments))
	report.Warning = e.warningFor(doc, res.lexicalOnly)
	report.Performance = core.Performance{
		ElapsedTimeSeconds: time.Since(start).Seconds(),
		LLMUsed:            res.llmUsed,
	}

	// A degraded run reflects backend health, not document content, so it
	// must not shadow the full-fidelity result of a later run. That covers
	// both an unreachable embedder and a configured judge that produced no
	// verdicts.
	if e.cache != nil && !res.lexicalOnly && !res.judgeFailed {
		if err := e.cache.Put(ctx, key, report); err != nil {
			e.logger.Warn("report cache write failed", "error", err)
		}
	}

	return report, nil
}

// match accumulates a clause's best retrieval evidence across segments.
type match struct {
	similarity   float64
	lexicalScore float64
	segment      string
}

/// assessResult carries the assessments together with the run's health:
// lexicalOnly means the embedder was unreachable, judgeFailed means a
// configured judge produced no verdicts at all.
type assessResult struct {
	assessments []core.ClauseAssessment
	lexicalOnly bool
	judgeFailed bool
	llmUsed     bool
}

// assess produces one assessment per matched clause.
func (e *Engine) assess(ctx context.Context, doc string) assessResult {
	matches := make(map[core.ClauseKey]*match)
	degraded := false
	maxLexical := 0.0

	segments := retrieval.Segments(doc, retrieval.DefaultSegmentWords, retrieval.DefaultOverlapWords)
	for _, segment := range segments {
		candidates := e.lexical.Candidates(segment, e.lexicalTopK)
		if len(candidates) == 0 {
			continue
		}

		for _, candidate := range candidates {
			if candidate.LexicalScore > maxLexical {
				maxLexical = candidate.LexicalScore
			}
			m, ok := matches[candidate.Key]
			if !ok {
				m = &match{}
				matches[candidate.Key] = m
			}
			if candidate.LexicalScore > m.lexicalScore {
				m.lexicalScore = candidate.LexicalScore
			}
		}

		if degraded {
			continue
		}

		reranked, err := e.reranker.Rerank(ctx, segment, candidates)
		if err != nil {
			degraded = true
			e.logger.Warn("semantic reranking unavailable, falling back to lexical matching", "error", err)
			continue
		}

		for _, candidate := range reranked {
			m := matches[candidate.Key]
			if candidate.Similarity > m.similarity {
				m.similarity = candidate.Similarity
				m.segment = segment
			}
		}
	}

	if degraded {
		return assessResult{
			assessments: e.lexicalAssessments(matches, maxLexical),
			lexicalOnly: true,
		}
	}

	semantic := e.semanticAssessments(matches)
	if e.provider == nil || len(semantic) == 0 {
		return assessResult{assessments: semantic}
	}

	tasks := make([]adjudicationTask, 0, len(semantic))
	for _, assessment := range semantic {
		clause, ok := e.corpus.Clause(assessment.Key)
		if !ok {
			continue
		}
		tasks = append(tasks, adjudicationTask{clause: clause, fallback: assessment})
	}

	adjudicated, llmUsed := e.adjudicate(ctx, doc, tasks)
	return assessResult{
		assessments: adjudicated,
		judgeFailed: !llmUsed,
		llmUsed:     llmUsed,
	}
}

// semanticAssessments converts similarity matches into assessments.
// Similarity maps linearly onto the score scale. Confidence is always
// none: only an adjudication verdict earns a confidence level.
func (e *Engine) semanticAssessments(matches map[core.ClauseKey]*match) []core.ClauseAssessment {
	var assessments []core.ClauseAssessment
	for key, m := range matches {
		if m.similarity <= 0 {
			continue
		}

		score := m.similarity * 100
		if score > 100 {
			score = 100
		}

		assessments = append(assessments, core.ClauseAssessment{
			Key:         key,
			Score:       score,
			Method:      core.MethodSemantic,
			Confidence:  core.ConfidenceNone,
			Explanation: fmt.Sprintf("document content matches clause with %.2f semantic similarity", m.similarity),
			Excerpt:     m.segment,
		})
	}
	return assessments
}

// lexicalAssessments scores matches by BM25 strength relative to the best
// match in the run. Used only when the embedder is unreachable.
func (e *Engine) lexicalAssessments(matches map[core.ClauseKey]*match, maxLexical float64) []core.ClauseAssessment {
	if maxLexical <= 0 {
		return nil
	}

	var assessments []core.ClauseAssessment
	for key, m := range matches {
		if m.lexicalScore <= 0 {
			continue
		}
		assessments = append(assessments, core.ClauseAssessment{
			Key:         key,
			Score:       m.lexicalScore / maxLexical * 100,
			Method:      core.MethodLexical,
			Confidence:  core.ConfidenceNone,
			Explanation: "term-frequency match; semantic verification was unavailable",
		})
	}
	return assessments
}

// warningFor assembles the report warning, if any.
func (e *Engine) warningFor(doc string, degraded bool) string {
	var warnings []string
	if !looksLikePolicyDocument(doc) {
		warnings = append(warnings, "document does not appear to address personal data protection")
	}
	if degraded {
		warnings = append(warnings, "semantic matching was unavailable; results are based on term matching only")
	}
	return strings.Join(warnings, "; ")
}

// Domain markers used for the relevance pre-check. A document mentioning
// fewer than two of these is probably not a privacy policy at all.
var relevanceMarkers = []string{
	"personal data", "data subject", "privacy", "consent", "controller",
	"processor", "data protection", "processing",
}

func looksLikePolicyDocument(doc string) bool {
	lower := strings.ToLower(doc)
	found := 0
	for _, marker := range relevanceMarkers {
		if strings.Contains(lower, marker) {
			found++
			if found >= 2 {
				return true
			}
		}
	}
	return false
}

// Status reports whether LLM adjudication is configured and reachable.
func (e *Engine) Status(ctx context.Context) Status {
	if e.provider == nil {
		return Status{}
	}

	status := Status{
		Enabled: true,
		Model:   e.provider.ModelID(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := e.provider.Ping(pingCtx); err != nil {
		e.logger.Warn("adjudication backend unreachable", "error", err)
		return status
	}

	status.Reachable = true
	return status
}
