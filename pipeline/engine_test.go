package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/clausecheck/ai"
	"github.com/poiesic/clausecheck/ai/mock"
	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/corpus"
	"github.com/poiesic/clausecheck/storage"
	badgercache "github.com/poiesic/clausecheck/storage/badger"
)

const consentClauseText = "consent must be freely given specific and informed"

// relevantDocument embeds the consent clause verbatim plus enough domain
// vocabulary to pass the relevance pre-check.
const relevantDocument = consentClauseText +
	"\n\nThis personal data policy explains how we handle privacy and consent."

func pipelineCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()

	c, err := corpus.New("test-v1", []*core.Article{
		{
			Number: 5,
			Title:  "Consent",
			Clauses: []*core.Clause{
				{Key: core.ClauseKey{ArticleNumber: 5, Label: "1"}, Text: consentClauseText},
			},
		},
		{
			Number: 8,
			Title:  "Security",
			Clauses: []*core.Clause{
				{Key: core.ClauseKey{ArticleNumber: 8, Label: "1"}, Text: "implement appropriate technical security measures"},
				{Key: core.ClauseKey{ArticleNumber: 8, Label: "2"}, Text: "notify the authority of security breaches without delay"},
			},
		},
		{
			Number: 12,
			Title:  "Records",
			Clauses: []*core.Clause{
				{Key: core.ClauseKey{ArticleNumber: 12, Label: "1"}, Text: "maintain records of all processing operations performed"},
			},
		},
	})
	require.NoError(t, err)
	return c
}

func embeddedCorpus(t *testing.T) (*corpus.Corpus, *mock.MockEmbedder) {
	t.Helper()

	c := pipelineCorpus(t)
	embedder := mock.NewMockEmbedder()
	require.NoError(t, c.AttachEmbeddings(context.Background(), embedder, 384))
	embedder.Reset()
	return c, embedder
}

func newTestEngine(t *testing.T, c *corpus.Corpus, embedder ai.Embedder, opts ...Option) *Engine {
	t.Helper()

	engine, err := New(c, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestCheckVerbatimClause(t *testing.T) {
	c, embedder := embeddedCorpus(t)
	engine := newTestEngine(t, c, embedder)

	report, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)

	require.Len(t, report.Articles, 3)
	assert.Equal(t, 5, report.Articles[0].ArticleNumber)
	assert.Equal(t, core.BandFull, report.Articles[0].Band)
	assert.Equal(t, core.BandMissing, report.Articles[1].Band)
	assert.Equal(t, core.BandMissing, report.Articles[2].Band)

	assert.InDelta(t, 33.33, report.OverallScore, 0.5)
	assert.Equal(t, core.LevelNotCompliant, report.ComplianceLevel)
	assert.Equal(t, 1, report.FullyCovered)
	assert.Equal(t, 2, report.Missing)
	assert.Equal(t, []int{8, 12}, report.MissingArticles.ArticleNumbers)
	assert.Empty(t, report.Warning)
	assert.False(t, report.Performance.LLMUsed)
}

func TestCheckEmptyDocument(t *testing.T) {
	c, embedder := embeddedCorpus(t)
	engine := newTestEngine(t, c, embedder)

	report, err := engine.Check(context.Background(), "   \n\t  ")
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.OverallScore)
	assert.Equal(t, core.LevelNotCompliant, report.ComplianceLevel)
	assert.Equal(t, 3, report.MissingArticles.Count)
	assert.Equal(t, 4, report.MissingClauses.Count)
	assert.NotEmpty(t, report.Warning)
	assert.Equal(t, 0, embedder.CallCount())
}

func TestCheckEmbedderUnavailable(t *testing.T) {
	c, embedder := embeddedCorpus(t)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}

	judge := mock.NewMockJudge()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)
	engine := newTestEngine(t, c, embedder, WithJudge(provider))

	report, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err, "embedder failure must degrade, not fail")

	assert.Contains(t, report.Warning, "term matching")
	assert.False(t, report.Performance.LLMUsed)
	assert.Equal(t, 0, judge.CallCount(), "no adjudication on a lexical-only run")

	// The verbatim clause still surfaces through lexical matching.
	assert.Equal(t, core.BandFull, report.Articles[0].Band)
}

func TestAssessConfidenceWithoutJudge(t *testing.T) {
	t.Run("semantic scores carry no confidence", func(t *testing.T) {
		c, embedder := embeddedCorpus(t)
		engine := newTestEngine(t, c, embedder)

		res := engine.assess(context.Background(), relevantDocument)
		require.NotEmpty(t, res.assessments)
		for _, assessment := range res.assessments {
			assert.Equal(t, core.ConfidenceNone, assessment.Confidence,
				"clause %s", assessment.Key)
			assert.Equal(t, core.MethodSemantic, assessment.Method)
		}
		assert.False(t, res.llmUsed)
	})

	t.Run("lexical fallback scores carry no confidence", func(t *testing.T) {
		c, embedder := embeddedCorpus(t)
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("connection refused")
		}
		engine := newTestEngine(t, c, embedder)

		res := engine.assess(context.Background(), relevantDocument)
		require.True(t, res.lexicalOnly)
		require.NotEmpty(t, res.assessments)
		for _, assessment := range res.assessments {
			assert.Equal(t, core.ConfidenceNone, assessment.Confidence,
				"clause %s", assessment.Key)
		}
	})
}

func TestCheckJudgeUnavailable(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	judge := mock.NewMockJudge()
	judge.JudgeFunc = func(ctx context.Context, req ai.JudgeRequest) (*ai.Verdict, error) {
		return nil, errors.New("deadline exceeded")
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)

	engine := newTestEngine(t, c, embedder,
		WithJudge(provider),
		WithRetry(2, time.Millisecond))

	report, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err, "judge failure must fall back to semantic scores")

	assert.Equal(t, core.BandFull, report.Articles[0].Band)
	assert.False(t, report.Performance.LLMUsed)
	assert.GreaterOrEqual(t, judge.CallCount(), 2, "failed calls are retried")
}

func TestAdjudicateCancelledKeepsFallbacks(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	judge := mock.NewMockJudge()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)
	engine := newTestEngine(t, c, embedder, WithJudge(provider))

	clauseConsent, ok := c.Clause(core.ClauseKey{ArticleNumber: 5, Label: "1"})
	require.True(t, ok)
	clauseSecurity, ok := c.Clause(core.ClauseKey{ArticleNumber: 8, Label: "1"})
	require.True(t, ok)

	tasks := []adjudicationTask{
		{clause: clauseConsent, fallback: core.ClauseAssessment{
			Key:        clauseConsent.Key,
			Score:      90,
			Method:     core.MethodSemantic,
			Confidence: core.ConfidenceNone,
		}},
		{clause: clauseSecurity, fallback: core.ClauseAssessment{
			Key:        clauseSecurity.Key,
			Score:      85,
			Method:     core.MethodSemantic,
			Confidence: core.ConfidenceNone,
		}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, llmUsed := engine.adjudicate(ctx, relevantDocument, tasks)
	require.Len(t, results, len(tasks))
	assert.False(t, llmUsed)
	assert.Equal(t, 0, judge.CallCount())

	// Every clause keeps its pre-adjudication assessment, including the
	// ones the cancellation cut off before submission.
	for i, task := range tasks {
		assert.Equal(t, task.fallback, results[i])
	}
}

func TestCheckFailedAdjudicationNotCached(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	judge := mock.NewMockJudge()
	judge.JudgeFunc = func(ctx context.Context, req ai.JudgeRequest) (*ai.Verdict, error) {
		return nil, errors.New("deadline exceeded")
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)

	cache, err := badgercache.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	engine := newTestEngine(t, c, embedder,
		WithJudge(provider),
		WithCache(cache),
		WithRetry(1, time.Millisecond))

	report, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)
	assert.False(t, report.Performance.LLMUsed)

	key := storage.CacheKey{
		DocumentHash:  core.HashDocument(relevantDocument),
		CorpusVersion: c.Version(),
	}
	_, err = cache.Get(context.Background(), key)
	assert.ErrorIs(t, err, storage.ErrNotFound,
		"a run with no verdicts must not shadow a later healthy run")
}

func TestCheckWithAdjudication(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	judge := mock.NewMockJudge()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), judge)
	engine := newTestEngine(t, c, embedder, WithJudge(provider))

	report, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)

	assert.True(t, report.Performance.LLMUsed)
	assert.Greater(t, judge.CallCount(), 0)
	assert.Equal(t, core.BandFull, report.Articles[0].Band)
}

func TestCheckCaching(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	cache, err := badgercache.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	engine := newTestEngine(t, c, embedder, WithCache(cache))

	first, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)

	embedder.Reset()
	second, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)

	assert.Equal(t, first, second, "cache hit returns the identical report")
	assert.Equal(t, 0, embedder.CallCount(), "cache hit skips retrieval entirely")
}

func TestCheckRepeatedRunsAgree(t *testing.T) {
	c, embedder := embeddedCorpus(t)
	engine := newTestEngine(t, c, embedder)

	first, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)
	second, err := engine.Check(context.Background(), relevantDocument)
	require.NoError(t, err)

	// Timing is the only field allowed to differ between runs.
	first.Performance = core.Performance{}
	second.Performance = core.Performance{}

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestCheckIrrelevantDocumentWarns(t *testing.T) {
	c, embedder := embeddedCorpus(t)
	engine := newTestEngine(t, c, embedder)

	report, err := engine.Check(context.Background(), "a recipe for sourdough bread with a long fermentation")
	require.NoError(t, err)
	assert.Contains(t, report.Warning, "does not appear")
}

func TestCheckDocumentTooLarge(t *testing.T) {
	c, embedder := embeddedCorpus(t)
	engine := newTestEngine(t, c, embedder, WithMaxDocumentBytes(16))

	_, err := engine.Check(context.Background(), "this document is longer than sixteen bytes")
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
}

func TestNewValidation(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	t.Run("nil corpus", func(t *testing.T) {
		_, err := New(nil, embedder)
		assert.ErrorIs(t, err, ErrNilCorpus)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := New(c, nil)
		assert.ErrorIs(t, err, ErrNilEmbedder)
	})

	t.Run("invalid pool size", func(t *testing.T) {
		_, err := New(c, embedder, WithPoolSize(0))
		assert.ErrorIs(t, err, ErrInvalidPoolSize)
	})

	t.Run("invalid retry attempts", func(t *testing.T) {
		_, err := New(c, embedder, WithRetry(0, time.Second))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}

func TestStatus(t *testing.T) {
	c, embedder := embeddedCorpus(t)

	t.Run("disabled without a provider", func(t *testing.T) {
		engine := newTestEngine(t, c, embedder)
		status := engine.Status(context.Background())
		assert.False(t, status.Enabled)
		assert.False(t, status.Reachable)
		assert.Empty(t, status.Model)
	})

	t.Run("enabled and reachable", func(t *testing.T) {
		provider := mock.NewMockProvider()
		engine := newTestEngine(t, c, embedder, WithJudge(provider))
		status := engine.Status(context.Background())
		assert.True(t, status.Enabled)
		assert.True(t, status.Reachable)
		assert.NotEmpty(t, status.Model)
	})

	t.Run("enabled but unreachable", func(t *testing.T) {
		provider := mock.NewMockProvider()
		provider.PingFunc = func(ctx context.Context) error {
			return errors.New("connection refused")
		}
		engine := newTestEngine(t, c, embedder, WithJudge(provider))
		status := engine.Status(context.Background())
		assert.True(t, status.Enabled)
		assert.False(t, status.Reachable)
	})
}
